package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type UserFixture struct {
	Email    string
	Password string
	Role     models.Role
}

var Users = []UserFixture{
	{"admin@example.com", "admin@123", models.RoleAdmin},
	{"superadmin@example.com", "admin@123", models.RoleAdmin},
	{"systemadmin@example.com", "admin@123", models.RoleAdmin},
	{"editor@example.com", "editor@123", models.RoleEditor},
	{"contenteditor@example.com", "editor@123", models.RoleEditor},
	{"newseditor@example.com", "editor@123", models.RoleEditor},
	{"techeditor@example.com", "editor@123", models.RoleEditor},
	{"senioreditor@example.com", "editor@123", models.RoleEditor},
	{"viewer@example.com", "viewer@123", models.RoleViewer},
	{"user1@example.com", "viewer@123", models.RoleViewer},
	{"user2@example.com", "viewer@123", models.RoleViewer},
	{"reader@example.com", "viewer@123", models.RoleViewer},
	{"subscriber@example.com", "viewer@123", models.RoleViewer},
	{"guest@example.com", "viewer@123", models.RoleViewer},
}

type notificationTemplate struct {
	Title   string
	Message string
	Type    models.NotificationType
}

var templates = []notificationTemplate{
	{"Welcome to the Platform", "Thank you for joining our platform. We hope you enjoy your experience!", models.NotificationInfo},
	{"Profile Updated Successfully", "Your profile information has been updated successfully.", models.NotificationSuccess},
	{"New Feature Available", "Check out our new messaging feature! Click here to try it out.", models.NotificationInfo},
	{"Security Alert", "We noticed a login from a new device. Please verify if this was you.", models.NotificationWarning},
	{"Password Change Required", "For security reasons, please update your password within the next 7 days.", models.NotificationWarning},
	{"Account Verification Failed", "We could not verify your email address. Please try again.", models.NotificationError},
	{"Payment Processed", "Your recent payment has been processed successfully.", models.NotificationSuccess},
	{"Document Shared", "A new document has been shared with you. Click to view.", models.NotificationInfo},
	{"Task Assigned", "You have been assigned a new task. Check your dashboard.", models.NotificationInfo},
	{"Maintenance Notice", "System maintenance scheduled for tonight at 2 AM UTC.", models.NotificationWarning},
}

// NotificationsPerRole is how many notifications each seeded user receives.
var NotificationsPerRole = map[models.Role]int{
	models.RoleAdmin:  15,
	models.RoleEditor: 12,
	models.RoleViewer: 8,
}

const notificationWindow = 30 * 24 * time.Hour

type Summary struct {
	UsersByRole   map[models.Role]int
	Notifications int
	Skipped       int
}

type Seeder struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
	log    zerolog.Logger
	rand   *rand.Rand
	now    func() time.Time
}

func New(db *gorm.DB, hasher auth.PasswordHasher, log zerolog.Logger) *Seeder {
	return &Seeder{
		db:     db,
		hasher: hasher,
		log:    log,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// Reset physically removes every notification and user.
func (s *Seeder) Reset(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearTable(tx, &models.Notification{}); err != nil {
			return fmt.Errorf("clear notifications: %w", err)
		}
		if err := clearTable(tx, &models.User{}); err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Msg("Cleared existing data")
	return nil
}

// clearTable starts a fresh statement for each delete so conditions never carry over.
func clearTable(tx *gorm.DB, model interface{}) error {
	return tx.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
}

// Run creates the fixture users and their notifications. Users whose email already exists are skipped.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{UsersByRole: map[models.Role]int{}}
	hashes := map[string]string{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, fixture := range Users {
			var existing int64
			if err := tx.Unscoped().Model(&models.User{}).Where("email = ?", fixture.Email).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				summary.Skipped++
				continue
			}

			hash, ok := hashes[fixture.Password]
			if !ok {
				var err error
				hash, err = s.hasher.Hash(fixture.Password)
				if err != nil {
					return fmt.Errorf("hash password for %s: %w", fixture.Email, err)
				}
				hashes[fixture.Password] = hash
			}

			user := models.User{Email: fixture.Email, Password: hash, Role: fixture.Role}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("create user %s: %w", fixture.Email, err)
			}
			summary.UsersByRole[user.Role]++

			notifications := s.notificationsFor(user)
			if err := tx.CreateInBatches(&notifications, 50).Error; err != nil {
				return fmt.Errorf("create notifications for %s: %w", fixture.Email, err)
			}
			summary.Notifications += len(notifications)

			s.log.Info().
				Str("email", user.Email).
				Str("role", string(user.Role)).
				Int("notifications", len(notifications)).
				Msg("Seeded user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for role, count := range summary.UsersByRole {
		s.log.Info().Str("role", string(role)).Int("users", count).Msg("Created users by role")
	}
	return summary, nil
}

func (s *Seeder) notificationsFor(user models.User) []models.Notification {
	count := NotificationsPerRole[user.Role]
	now := s.now()

	notifications := make([]models.Notification, 0, count)
	for i := 0; i < count; i++ {
		tpl := templates[s.rand.Intn(len(templates))]
		createdAt := now.Add(-time.Duration(s.rand.Int63n(int64(notificationWindow))))

		n := models.Notification{
			UserID:  user.ID,
			Title:   tpl.Title,
			Message: tpl.Message,
			Type:    tpl.Type,
			IsRead:  s.rand.Float64() > 0.5,
		}
		n.CreatedAt = createdAt
		n.UpdatedAt = createdAt
		notifications = append(notifications, n)
	}
	return notifications
}
