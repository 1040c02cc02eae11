// internal/database/postgres.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"sloboda/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Adapter defines the common interface for database operations. It is
// implemented by PostgresDB; actors and handlers depend on the narrow
// slices of it they need.
type Adapter interface {
	// Connection
	Close(ctx context.Context) error

	// User methods
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	UpdateUserActivity(ctx context.Context, id uuid.UUID, active bool) error
	UpdateUserAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	GetAllUsers(ctx context.Context, limit, offset int) ([]*models.User, error)

	// Role methods
	GetUserRole(ctx context.Context, userID uuid.UUID) (*models.UserRole, error)
	SetUserRole(ctx context.Context, userID uuid.UUID, role models.Role) error

	// Thread methods
	SaveThread(ctx context.Context, thread *models.Thread) error
	GetThread(ctx context.Context, id uuid.UUID, requestingUserID uuid.UUID) (*models.Thread, error)
	ListThreads(ctx context.Context, limit, offset int, categorySlug string, requestingUserID uuid.UUID) ([]*models.Thread, error)
	UpdateThreadContent(ctx context.Context, id uuid.UUID, title, body string) error
	SetThreadPinned(ctx context.Context, id uuid.UUID, pinned bool) error
	SetThreadLocked(ctx context.Context, id uuid.UUID, locked bool) error
	SoftDeleteThread(ctx context.Context, id uuid.UUID) error
	IncrementThreadViews(ctx context.Context, id uuid.UUID) error
	SetThreadTags(ctx context.Context, id uuid.UUID, tags []string) error

	// Comment methods
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetThreadComments(ctx context.Context, threadID uuid.UUID, requestingUserID uuid.UUID) ([]*models.Comment, error)
	UpdateCommentBody(ctx context.Context, id uuid.UUID, body string) error
	SoftDeleteComment(ctx context.Context, id uuid.UUID) error

	// Vote methods
	RecordVote(ctx context.Context, userID, targetID uuid.UUID, targetType models.VoteTargetType, value int) (*models.VoteResult, error)

	// Category methods
	CreateCategory(ctx context.Context, cat *models.Category) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, cat *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Tag methods
	PopularTags(ctx context.Context, limit int) ([]*models.TagCount, error)
	SearchTags(ctx context.Context, query string, limit int) ([]*models.TagCount, error)
	RelatedTags(ctx context.Context, tag string, limit int) ([]*models.TagCount, error)
	TagCategories(ctx context.Context) ([]*models.TagCategory, error)

	// Event methods
	SaveEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListEvents(ctx context.Context, limit, offset int) ([]*models.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	UpsertRSVP(ctx context.Context, rsvp *models.RSVP) (*models.Event, error)

	// Campaign methods
	SaveCampaign(ctx context.Context, campaign *models.Campaign) error
	GetCampaign(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	ListCampaigns(ctx context.Context, limit, offset int) ([]*models.Campaign, error)
	CloseCampaign(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	RecordDonation(ctx context.Context, donation *models.Donation) (*models.Campaign, error)

	// Notification methods
	SaveNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error

	// Upload methods
	SaveUpload(ctx context.Context, upload *models.Upload) error
	UserStorageUsed(ctx context.Context, userID uuid.UUID) (int64, error)

	// Admin methods
	GetSettings(ctx context.Context) ([]*models.Setting, error)
	PutSetting(ctx context.Context, key, value string) error
	EntityCounts(ctx context.Context) (map[string]int, error)
}

// PostgresDB represents a PostgreSQL database connection
type PostgresDB struct {
	DB *sqlx.DB
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %v", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %v", err)
	}

	log.Println("Successfully connected to PostgreSQL!")

	return &PostgresDB{DB: db}, nil
}

// Close closes the database connection
func (p *PostgresDB) Close(ctx context.Context) error {
	log.Println("Closing PostgreSQL connection...")
	return p.DB.Close()
}

// InitializeTables creates all necessary tables if they don't exist
func (p *PostgresDB) InitializeTables(ctx context.Context) error {
	statements := []struct {
		name  string
		query string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				username VARCHAR(50) UNIQUE NOT NULL,
				email VARCHAR(100) UNIQUE NOT NULL,
				password_hash VARCHAR(100) NOT NULL,
				avatar_url VARCHAR(512) DEFAULT '',
				bio TEXT DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				last_active TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				is_connected BOOLEAN DEFAULT FALSE NOT NULL
			)`},
		{"user_roles", `
			CREATE TABLE IF NOT EXISTS user_roles (
				user_id UUID PRIMARY KEY REFERENCES users(id),
				role VARCHAR(20) NOT NULL DEFAULT 'new_user',
				points INTEGER NOT NULL DEFAULT 0,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
		{"categories", `
			CREATE TABLE IF NOT EXISTS categories (
				id UUID PRIMARY KEY,
				name VARCHAR(100) NOT NULL,
				slug VARCHAR(100) UNIQUE NOT NULL,
				description TEXT DEFAULT '',
				sort_order INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
		{"threads", `
			CREATE TABLE IF NOT EXISTS threads (
				id UUID PRIMARY KEY,
				title VARCHAR(300) NOT NULL,
				body TEXT DEFAULT '',
				thread_type VARCHAR(20) NOT NULL DEFAULT 'discussion',
				author_id UUID REFERENCES users(id),
				category_id UUID REFERENCES categories(id),
				vote_count INTEGER NOT NULL DEFAULT 0,
				comment_count INTEGER NOT NULL DEFAULT 0,
				view_count INTEGER NOT NULL DEFAULT 0,
				is_pinned BOOLEAN NOT NULL DEFAULT FALSE,
				is_locked BOOLEAN NOT NULL DEFAULT FALSE,
				is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				last_activity_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
		{"comments", `
			CREATE TABLE IF NOT EXISTS comments (
				id UUID PRIMARY KEY,
				body TEXT NOT NULL,
				thread_id UUID NOT NULL REFERENCES threads(id),
				parent_comment_id UUID REFERENCES comments(id),
				author_id UUID REFERENCES users(id),
				vote_count INTEGER NOT NULL DEFAULT 0,
				depth INTEGER NOT NULL DEFAULT 0,
				is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
		{"votes", `
			CREATE TABLE IF NOT EXISTS votes (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				target_id UUID NOT NULL,
				target_type VARCHAR(10) NOT NULL,
				value INTEGER NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				UNIQUE(user_id, target_id, target_type)
			)`},
		{"thread_tags", `
			CREATE TABLE IF NOT EXISTS thread_tags (
				thread_id UUID NOT NULL REFERENCES threads(id),
				tag VARCHAR(64) NOT NULL,
				tag_category VARCHAR(64) NOT NULL DEFAULT '',
				PRIMARY KEY (thread_id, tag)
			)`},
		{"events", `
			CREATE TABLE IF NOT EXISTS events (
				id UUID PRIMARY KEY,
				title VARCHAR(200) NOT NULL,
				description TEXT DEFAULT '',
				starts_at TIMESTAMP WITH TIME ZONE NOT NULL,
				location VARCHAR(300) DEFAULT '',
				latitude DOUBLE PRECISION,
				longitude DOUBLE PRECISION,
				capacity INTEGER NOT NULL DEFAULT 0,
				going_count INTEGER NOT NULL DEFAULT 0,
				created_by UUID REFERENCES users(id),
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
		{"event_rsvps", `
			CREATE TABLE IF NOT EXISTS event_rsvps (
				event_id UUID NOT NULL REFERENCES events(id),
				user_id UUID NOT NULL REFERENCES users(id),
				status VARCHAR(10) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				PRIMARY KEY (event_id, user_id)
			)`},
		{"campaigns", `
			CREATE TABLE IF NOT EXISTS campaigns (
				id UUID PRIMARY KEY,
				title VARCHAR(200) NOT NULL,
				description TEXT DEFAULT '',
				goal_amount BIGINT NOT NULL,
				raised_amount BIGINT NOT NULL DEFAULT 0,
				owner_id UUID REFERENCES users(id),
				is_closed BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
		{"donations", `
			CREATE TABLE IF NOT EXISTS donations (
				id UUID PRIMARY KEY,
				campaign_id UUID NOT NULL REFERENCES campaigns(id),
				donor_id UUID REFERENCES users(id),
				amount BIGINT NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
		{"notifications", `
			CREATE TABLE IF NOT EXISTS notifications (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				kind VARCHAR(30) NOT NULL,
				payload JSONB NOT NULL DEFAULT '{}',
				is_read BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
		{"uploads", `
			CREATE TABLE IF NOT EXISTS uploads (
				id UUID PRIMARY KEY,
				owner_id UUID NOT NULL REFERENCES users(id),
				object_key VARCHAR(512) NOT NULL,
				content_type VARCHAR(100) NOT NULL,
				size BIGINT NOT NULL,
				public_url VARCHAR(1024) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
		{"settings", `
			CREATE TABLE IF NOT EXISTS settings (
				key VARCHAR(100) PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`},
	}

	for _, stmt := range statements {
		if _, err := p.DB.ExecContext(ctx, stmt.query); err != nil {
			return fmt.Errorf("failed to create %s table: %v", stmt.name, err)
		}
	}
	return nil
}
