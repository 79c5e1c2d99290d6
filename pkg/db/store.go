package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS giveaways (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tweet_id TEXT NOT NULL UNIQUE,
    author_id TEXT NOT NULL,
    author_username TEXT NOT NULL,
    tweet_text TEXT NOT NULL,
    token_symbol TEXT,
    token_price_usd REAL,
    estimated_value_usd REAL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    participated BOOLEAN DEFAULT FALSE,
    followed BOOLEAN DEFAULT FALSE,
    retweeted BOOLEAN DEFAULT FALSE,
    liked BOOLEAN DEFAULT FALSE,
    commented BOOLEAN DEFAULT FALSE,
    won BOOLEAN DEFAULT FALSE,
    winner_announced BOOLEAN DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_number INTEGER NOT NULL UNIQUE,
    username TEXT,
    user_id TEXT,
    is_active BOOLEAN DEFAULT TRUE,
    last_used TIMESTAMP,
    total_participations INTEGER DEFAULT 0,
    total_wins INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS winner_notifications (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    giveaway_id INTEGER REFERENCES giveaways(id),
    account_number INTEGER,
    notification_type TEXT,
    notification_text TEXT,
    received_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    processed BOOLEAN DEFAULT FALSE,
    UNIQUE(account_number, notification_text)
);

CREATE INDEX IF NOT EXISTS idx_giveaway_author ON giveaways(author_id);
CREATE INDEX IF NOT EXISTS idx_giveaway_pending ON giveaways(participated);
CREATE INDEX IF NOT EXISTS idx_notif_time ON winner_notifications(received_at);
`

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ---- Giveaways ----

// InsertGiveaway stores a qualified giveaway. Returns false when the tweet id
// was already recorded.
func (s *Store) InsertGiveaway(g Giveaway) (int64, bool, error) {
	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO giveaways
		(tweet_id, author_id, author_username, tweet_text, token_symbol, token_price_usd, estimated_value_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.TweetID, g.AuthorID, g.AuthorUsername, g.TweetText,
		nullStr(g.TokenSymbol), nullFloat(g.TokenPriceUSD), nullFloat(g.EstimatedValueUSD))
	if err != nil {
		return 0, false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return 0, false, nil
	}
	id, _ := res.LastInsertId()
	return id, true, nil
}

func (s *Store) HasGiveaway(tweetID string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(1) FROM giveaways WHERE tweet_id=?", tweetID).Scan(&n)
	return n > 0, err
}

func (s *Store) GetPendingGiveaways() ([]Giveaway, error) {
	return s.queryGiveaways("WHERE participated=FALSE ORDER BY created_at ASC")
}

func (s *Store) GetRecentGiveaways(limit int) ([]Giveaway, error) {
	return s.queryGiveaways(fmt.Sprintf("ORDER BY created_at DESC LIMIT %d", limit))
}

func (s *Store) queryGiveaways(clause string) ([]Giveaway, error) {
	rows, err := s.db.Query(`
		SELECT id, tweet_id, author_id, author_username, tweet_text,
		       COALESCE(token_symbol,''), token_price_usd, estimated_value_usd, created_at,
		       participated, followed, retweeted, liked, commented, won, winner_announced
		FROM giveaways ` + clause)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var giveaways []Giveaway
	for rows.Next() {
		var g Giveaway
		var price, value sql.NullFloat64
		if err := rows.Scan(&g.ID, &g.TweetID, &g.AuthorID, &g.AuthorUsername, &g.TweetText,
			&g.TokenSymbol, &price, &value, &g.CreatedAt,
			&g.Participated, &g.Followed, &g.Retweeted, &g.Liked, &g.Commented,
			&g.Won, &g.WinnerAnnounced); err != nil {
			return nil, err
		}
		if price.Valid {
			g.TokenPriceUSD = &price.Float64
		}
		if value.Valid {
			g.EstimatedValueUSD = &value.Float64
		}
		giveaways = append(giveaways, g)
	}
	return giveaways, nil
}

func (s *Store) MarkParticipated(id int64, followed, retweeted, liked, commented bool) error {
	_, err := s.db.Exec(`
		UPDATE giveaways SET participated=TRUE, followed=?, retweeted=?, liked=?, commented=?
		WHERE id=?`,
		followed, retweeted, liked, commented, id)
	return err
}

// MarkLatestWonByAuthor flags the most recent participated giveaway from an
// author as won, and returns its id. Used when a winner announcement arrives
// from that author.
func (s *Store) MarkLatestWonByAuthor(authorID string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		SELECT id FROM giveaways WHERE author_id=? AND participated=TRUE
		ORDER BY created_at DESC LIMIT 1`, authorID).Scan(&id)
	if err != nil {
		return 0, err
	}
	_, err = s.db.Exec("UPDATE giveaways SET won=TRUE, winner_announced=TRUE WHERE id=?", id)
	return id, err
}

// ---- Accounts ----

func (s *Store) UpsertAccount(number int, userID, username string) error {
	_, err := s.db.Exec(`
		INSERT INTO accounts (account_number, user_id, username)
		VALUES (?, ?, ?)
		ON CONFLICT(account_number) DO UPDATE SET user_id=excluded.user_id, username=excluded.username`,
		number, userID, username)
	return err
}

func (s *Store) GetActiveAccounts(limit int) ([]Account, error) {
	q := `SELECT id, account_number, COALESCE(username,''), COALESCE(user_id,''), is_active,
	             last_used, total_participations, total_wins, created_at
	      FROM accounts WHERE is_active=TRUE ORDER BY account_number`
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (s *Store) BumpAccountStats(number int, participated, won bool) error {
	_, err := s.db.Exec(`
		UPDATE accounts SET last_used=CURRENT_TIMESTAMP,
			total_participations = total_participations + ?,
			total_wins = total_wins + ?
		WHERE account_number=?`,
		boolToInt(participated), boolToInt(won), number)
	return err
}

func (s *Store) GetTopAccounts(limit int) ([]Account, error) {
	rows, err := s.db.Query(`
		SELECT id, account_number, COALESCE(username,''), COALESCE(user_id,''), is_active,
		       last_used, total_participations, total_wins, created_at
		FROM accounts ORDER BY total_wins DESC, total_participations DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// scanAccount reads one accounts row. last_used is selected as the raw column
// rather than COALESCE'd in SQL: COALESCE strips the TIMESTAMP decltype, which
// makes the driver hand back a string instead of a time.Time. The fallback to
// created_at happens here instead.
func scanAccount(rows *sql.Rows) (Account, error) {
	var a Account
	var lastUsed sql.NullTime
	if err := rows.Scan(&a.ID, &a.AccountNumber, &a.Username, &a.UserID, &a.IsActive,
		&lastUsed, &a.TotalParticipations, &a.TotalWins, &a.CreatedAt); err != nil {
		return Account{}, err
	}
	a.LastUsed = a.CreatedAt
	if lastUsed.Valid {
		a.LastUsed = lastUsed.Time
	}
	return a, nil
}

// ---- Winner notifications ----

// HasWinnerNotification reports whether the same announcement text was
// already recorded for the account.
func (s *Store) HasWinnerNotification(accountNumber int, text string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(1) FROM winner_notifications WHERE account_number=? AND notification_text=?",
		accountNumber, text).Scan(&n)
	return n > 0, err
}

// InsertWinnerNotification saves a detected winner announcement. Returns
// false when the same text was already recorded for the account.
func (s *Store) InsertWinnerNotification(n WinnerNotification) (bool, error) {
	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO winner_notifications
		(giveaway_id, account_number, notification_type, notification_text)
		VALUES (?, ?, ?, ?)`,
		n.GiveawayID, n.AccountNumber, n.NotificationType, n.NotificationText)
	if err != nil {
		return false, err
	}
	count, _ := res.RowsAffected()
	return count > 0, nil
}

func (s *Store) GetRecentWins(since time.Time) ([]WinnerNotification, error) {
	rows, err := s.db.Query(`
		SELECT id, COALESCE(giveaway_id,0), account_number, COALESCE(notification_type,''),
		       COALESCE(notification_text,''), received_at, processed
		FROM winner_notifications WHERE received_at >= ? ORDER BY received_at DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wins []WinnerNotification
	for rows.Next() {
		var n WinnerNotification
		if err := rows.Scan(&n.ID, &n.GiveawayID, &n.AccountNumber, &n.NotificationType,
			&n.NotificationText, &n.ReceivedAt, &n.Processed); err != nil {
			return nil, err
		}
		wins = append(wins, n)
	}
	return wins, nil
}

// ---- Statistics ----

func (s *Store) GetStats() (map[string]int, error) {
	stats := make(map[string]int)
	counts := map[string]string{
		"total_giveaways": "SELECT COUNT(1) FROM giveaways",
		"participated":    "SELECT COUNT(1) FROM giveaways WHERE participated=TRUE",
		"wins":            "SELECT COUNT(1) FROM giveaways WHERE won=TRUE",
		"active_accounts": "SELECT COUNT(1) FROM accounts WHERE is_active=TRUE",
		"notifications":   "SELECT COUNT(1) FROM winner_notifications",
	}
	for key, q := range counts {
		var n int
		if err := s.db.QueryRow(q).Scan(&n); err != nil {
			return nil, err
		}
		stats[key] = n
	}
	return stats, nil
}

// TokenStat is a distinct token seen across stored giveaways.
type TokenStat struct {
	Symbol   string   `json:"symbol"`
	PriceUSD *float64 `json:"price_usd"`
	Count    int      `json:"count"`
}

func (s *Store) GetTokenStats() ([]TokenStat, error) {
	rows, err := s.db.Query(`
		SELECT token_symbol, MAX(token_price_usd), COUNT(1)
		FROM giveaways WHERE token_symbol IS NOT NULL AND token_symbol != ''
		GROUP BY token_symbol ORDER BY COUNT(1) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []TokenStat
	for rows.Next() {
		var t TokenStat
		var price sql.NullFloat64
		if err := rows.Scan(&t.Symbol, &price, &t.Count); err != nil {
			return nil, err
		}
		if price.Valid {
			t.PriceUSD = &price.Float64
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// helpers

func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
