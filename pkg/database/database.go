// Package database provides the MongoDB connection and the typed services
// the dashboard API is built on.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names. The frontend reflects these documents directly, so the
// names (and the field names in pkg/models) are a compatibility surface.
const (
	CollGuilds    = "guilds"
	CollSettings  = "settings"
	CollUsers     = "users"
	CollRoles     = "roles"
	CollChannels  = "channels"
	CollWarnings  = "warnings"
	CollAuditLogs = "auditlogs"
	CollSpamLogs  = "spamlogs"
)

var (
	// ErrNotFound signals an absent document where one was required
	ErrNotFound = errors.New("document not found")
	// ErrNotConnected signals that no database connection is available
	ErrNotConnected = errors.New("database not connected")
)

// Database manages the MongoDB connection
type Database struct {
	client      *mongo.Client
	db          *mongo.Database
	isConnected bool
	mu          sync.RWMutex
	collections map[string]*mongo.Collection
}

var (
	database *Database
	dbOnce   sync.Once
)

// Init initializes the global database instance
func Init(mongoURL, dbName string) (*Database, error) {
	var err error
	dbOnce.Do(func() {
		database = NewDatabase()
		err = database.Connect(mongoURL, dbName)
	})
	return database, err
}

// Get returns the global database instance
func Get() *Database {
	return database
}

// NewDatabase creates a new Database instance
func NewDatabase() *Database {
	return &Database{
		collections: make(map[string]*mongo.Collection),
	}
}

// Connect establishes a connection to MongoDB
func (d *Database) Connect(mongoURL, dbName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isConnected {
		return nil
	}

	logger.System("Connecting to the database...", "DB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(mongoURL).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Critical("Failed to connect to the database.", "DB")
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Critical("Failed to verify the database connection.", "DB")
		return err
	}

	d.client = client
	d.db = client.Database(dbName)
	d.isConnected = true

	logger.Success("Connected to the database.", "DB")
	return nil
}

// Disconnect closes the database connection
func (d *Database) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.client.Disconnect(ctx); err != nil {
		return err
	}
	d.isConnected = false
	logger.Warn("The database has been disconnected", "DB")
	return nil
}

// Connected reports whether a verified connection is up
func (d *Database) Connected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.isConnected
}

// Ping measures the database response time
func (d *Database) Ping() (time.Duration, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.isConnected || d.client == nil {
		return 0, ErrNotConnected
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := d.client.Ping(ctx, readpref.Primary())
	return time.Since(start), err
}

// GetStatus returns the database connection status
func (d *Database) GetStatus() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.client == nil {
		return "offline", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		return "offline", false
	}
	return "online", true
}

// GetCollection returns a MongoDB collection
func (d *Database) GetCollection(name string) *mongo.Collection {
	d.mu.RLock()
	if col, exists := d.collections[name]; exists {
		d.mu.RUnlock()
		return col
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}

	col := d.db.Collection(name)
	d.collections[name] = col
	return col
}

// EnsureIndexes creates the unique and TTL indexes the document model relies
// on. Audit and spam logs expire server-side (30 and 7 days).
func (d *Database) EnsureIndexes(ctx context.Context) error {
	type indexSpec struct {
		collection string
		model      mongo.IndexModel
	}

	unique := options.Index().SetUnique(true)
	specs := []indexSpec{
		{CollGuilds, mongo.IndexModel{Keys: bson.D{{Key: "guildId", Value: 1}}, Options: unique}},
		{CollSettings, mongo.IndexModel{Keys: bson.D{{Key: "guildId", Value: 1}}, Options: unique}},
		{CollUsers, mongo.IndexModel{Keys: bson.D{{Key: "discordId", Value: 1}}, Options: unique}},
		{CollUsers, mongo.IndexModel{Keys: bson.D{{Key: "guilds", Value: 1}}}},
		{CollRoles, mongo.IndexModel{Keys: bson.D{{Key: "roleId", Value: 1}}, Options: unique}},
		{CollRoles, mongo.IndexModel{Keys: bson.D{{Key: "guildId", Value: 1}, {Key: "position", Value: 1}}}},
		{CollChannels, mongo.IndexModel{Keys: bson.D{{Key: "channelId", Value: 1}}, Options: unique}},
		{CollChannels, mongo.IndexModel{Keys: bson.D{{Key: "guildId", Value: 1}, {Key: "position", Value: 1}}}},
		{CollWarnings, mongo.IndexModel{Keys: bson.D{{Key: "guildId", Value: 1}, {Key: "userId", Value: 1}}}},
		{CollWarnings, mongo.IndexModel{Keys: bson.D{{Key: "active", Value: 1}, {Key: "expiresAt", Value: 1}}}},
		{CollAuditLogs, mongo.IndexModel{Keys: bson.D{{Key: "guildId", Value: 1}, {Key: "actionType", Value: 1}}}},
		{CollAuditLogs, mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(models.AuditLogTTL.Seconds())),
		}},
		{CollSpamLogs, mongo.IndexModel{Keys: bson.D{{Key: "guildId", Value: 1}, {Key: "detectionType", Value: 1}}}},
		{CollSpamLogs, mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(models.SpamLogTTL.Seconds())),
		}},
	}

	for _, spec := range specs {
		col := d.GetCollection(spec.collection)
		if col == nil {
			return ErrNotConnected
		}
		if _, err := col.Indexes().CreateOne(ctx, spec.model); err != nil {
			return fmt.Errorf("creating index on %s: %w", spec.collection, err)
		}
	}

	logger.System("Database indexes verified.", "DB")
	return nil
}

// Client returns the underlying MongoDB client
func (d *Database) Client() *mongo.Client {
	return d.client
}

// DB returns the underlying MongoDB database
func (d *Database) DB() *mongo.Database {
	return d.db
}
