// Package testutil opens in-memory databases with the full schema and seeds
// fixtures for repository, service and router tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	athleteModel "github.com/squadboard/squadboard-api/internal/athlete/model"
	"github.com/squadboard/squadboard-api/internal/auth"
	categoryModel "github.com/squadboard/squadboard-api/internal/category/model"
	eventModel "github.com/squadboard/squadboard-api/internal/event/model"
	paymentModel "github.com/squadboard/squadboard-api/internal/payment/model"
	teamModel "github.com/squadboard/squadboard-api/internal/team/model"
	userModel "github.com/squadboard/squadboard-api/internal/user/model"
	"github.com/squadboard/squadboard-api/pkg/money"
)

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&teamModel.Team{},
		&userModel.User{},
		&userModel.Manager{},
		&userModel.ManagerCategory{},
		&categoryModel.Category{},
		&athleteModel.Athlete{},
		&athleteModel.CategoryAthlete{},
		&eventModel.Event{},
		&eventModel.Confirmation{},
		&eventModel.ConfirmationUser{},
		&eventModel.ConfirmationItem{},
		&paymentModel.Payment{},
		&paymentModel.PaymentItem{},
		&paymentModel.PaymentUser{},
	}
}

// NewDB opens a private in-memory SQLite database with every table created.
// The pool is pinned to one connection so the schema is visible to every query.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

// Password is the plain-text password of every seeded account.
const Password = "secret123"

// SeedTeam inserts a team with its TEAM user.
func SeedTeam(t *testing.T, db *gorm.DB, name string) (*teamModel.Team, *userModel.User) {
	t.Helper()
	hash := hashPassword(t)
	team := &teamModel.Team{Name: name, Email: name + "@example.com", PasswordHash: hash}
	require.NoError(t, db.Create(team).Error)

	user := &userModel.User{
		Username:     name,
		PasswordHash: hash,
		Role:         auth.RoleTeam,
		TeamID:       team.ID,
	}
	require.NoError(t, db.Create(user).Error)
	return team, user
}

// SeedCategory inserts a category.
func SeedCategory(t *testing.T, db *gorm.DB, teamID, name string) *categoryModel.Category {
	t.Helper()
	category := &categoryModel.Category{Name: name, TeamID: teamID}
	require.NoError(t, db.Create(category).Error)
	return category
}

// SeedAthlete inserts an ATHLETE user with a profile linked to categoryIDs.
func SeedAthlete(t *testing.T, db *gorm.DB, teamID, name string, categoryIDs ...string) *athleteModel.Athlete {
	t.Helper()
	user := &userModel.User{
		Username:     teamID + "-" + name,
		PasswordHash: hashPassword(t),
		Role:         auth.RoleAthlete,
		TeamID:       teamID,
	}
	require.NoError(t, db.Create(user).Error)

	athlete := &athleteModel.Athlete{UserID: user.ID, TeamID: teamID, Name: name}
	require.NoError(t, db.Create(athlete).Error)
	for _, categoryID := range categoryIDs {
		require.NoError(t, db.Create(&athleteModel.CategoryAthlete{
			CategoryID: categoryID,
			AthleteID:  athlete.ID,
		}).Error)
	}
	athlete.CategoryIDs = categoryIDs
	return athlete
}

// SeedManager inserts a MANAGER user with a profile.
func SeedManager(t *testing.T, db *gorm.DB, teamID, name string) *userModel.Manager {
	t.Helper()
	user := &userModel.User{
		Username:     teamID + "-" + name,
		PasswordHash: hashPassword(t),
		Role:         auth.RoleManager,
		TeamID:       teamID,
	}
	require.NoError(t, db.Create(user).Error)

	manager := &userModel.Manager{UserID: user.ID, TeamID: teamID, Name: name}
	require.NoError(t, db.Create(manager).Error)
	return manager
}

// SeedEvent inserts an event without confirmations.
func SeedEvent(t *testing.T, db *gorm.DB, teamID, categoryID, name string) *eventModel.Event {
	t.Helper()
	event := &eventModel.Event{
		Name:       name,
		Date:       time.Now().Add(24 * time.Hour),
		Type:       eventModel.TypeGame,
		TeamID:     teamID,
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

// SeedPayment inserts a payment with the given item values and no payment users.
func SeedPayment(t *testing.T, db *gorm.DB, teamID, categoryID string, eventID *string, values ...money.Amount) *paymentModel.Payment {
	t.Helper()
	payment := &paymentModel.Payment{
		Name:       "fee",
		DueDate:    time.Now().Add(7 * 24 * time.Hour),
		TeamID:     teamID,
		CategoryID: categoryID,
		EventID:    eventID,
		Value:      money.Sum(values...),
	}
	require.NoError(t, db.Create(payment).Error)
	for _, v := range values {
		item := paymentModel.PaymentItem{Name: "item " + v.String(), Value: v, PaymentID: payment.ID}
		require.NoError(t, db.Create(&item).Error)
		payment.Items = append(payment.Items, item)
	}
	return payment
}

func hashPassword(t *testing.T) string {
	t.Helper()
	hash, err := auth.HashPassword(Password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}
