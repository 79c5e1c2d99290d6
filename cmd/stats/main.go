package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/giveaway-hunter/pkg/config"
	"github.com/giveaway-hunter/pkg/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config load failed:", err)
		os.Exit(1)
	}

	store, err := db.NewStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "database open failed:", err)
		os.Exit(1)
	}
	defer store.Close()

	title := color.New(color.FgCyan, color.Bold)
	section := color.New(color.FgYellow, color.Bold)

	title.Println("Giveaway Hunter - Statistics Dashboard")
	fmt.Println()

	stats, err := store.GetStats()
	if err != nil {
		fmt.Fprintln(os.Stderr, "stats query failed:", err)
		os.Exit(1)
	}

	section.Println("📊 Giveaway Statistics")
	fmt.Printf("  Total giveaways found: %d\n", stats["total_giveaways"])
	fmt.Printf("  Participated:          %d\n", stats["participated"])
	fmt.Printf("  Wins:                  %d\n", stats["wins"])
	if stats["participated"] > 0 {
		fmt.Printf("  Win rate:              %.2f%%\n",
			float64(stats["wins"])/float64(stats["participated"])*100)
	}
	fmt.Println()

	section.Println("👥 Accounts")
	fmt.Printf("  Active accounts: %d\n\n", stats["active_accounts"])

	if top, err := store.GetTopAccounts(5); err == nil && len(top) > 0 {
		section.Println("🏆 Top Performing Accounts")
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"#", "Account", "Wins", "Participations"})
		for _, a := range top {
			name := a.Username
			if name == "" {
				name = fmt.Sprintf("account %d", a.AccountNumber)
			}
			table.Append([]string{
				fmt.Sprintf("%d", a.AccountNumber),
				name,
				fmt.Sprintf("%d", a.TotalWins),
				fmt.Sprintf("%d", a.TotalParticipations),
			})
		}
		table.Render()
		fmt.Println()
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if wins, err := store.GetRecentWins(weekAgo); err == nil {
		section.Println("📅 Recent Wins (Last 7 Days)")
		if len(wins) == 0 {
			fmt.Println("  none yet")
		}
		for i, w := range wins {
			if i >= 5 {
				break
			}
			fmt.Printf("  - account %d on %s\n", w.AccountNumber, w.ReceivedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}

	if tokens, err := store.GetTokenStats(); err == nil && len(tokens) > 0 {
		section.Println("💰 Tokens Tracked")
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Token", "Price (USD)", "Giveaways"})
		for i, t := range tokens {
			if i >= 10 {
				break
			}
			price := "—"
			if t.PriceUSD != nil {
				price = fmt.Sprintf("$%.4f", *t.PriceUSD)
			}
			table.Append([]string{t.Symbol, price, fmt.Sprintf("%d", t.Count)})
		}
		table.Render()
	}
}
