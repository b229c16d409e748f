package main

import (
	"flag"
	"fmt"

	"buzzline/internal/entity"
	"buzzline/internal/model"
	"buzzline/internal/repo/persistent"
	"buzzline/pkg/config"
	"buzzline/pkg/database"
	"buzzline/pkg/logger"
	"buzzline/pkg/queue"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a couple of demo users plus a spread of notifications so the API has
// something to page through locally. With -events it also publishes demo
// events to the queue so the consumer path can be exercised end to end.
func main() {
	var perUser, demoEvents int
	flag.IntVar(&perUser, "count", 12, "notifications to create per user")
	flag.IntVar(&demoEvents, "events", 0, "demo events to publish to the event queue")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	users := seedUsers(db, log)
	seedNotifications(db, log, users, perUser)
	if demoEvents > 0 {
		publishDemoEvents(cfg, log, users, demoEvents)
	}

	log.Info("Seeding complete")
}

func publishDemoEvents(cfg *config.Config, log *logger.Logger, users []model.UserModel, count int) {
	client, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, skipping demo events: %v", err)
		return
	}
	defer client.Close()

	types := []entity.NotificationType{
		entity.TypePostLike,
		entity.TypePostComment,
		entity.TypeFollowRequest,
		entity.TypeMessage,
	}

	for n := 0; n < count; n++ {
		recipient := users[n%len(users)]
		sender := users[(n+1)%len(users)]
		event := map[string]interface{}{
			"type":         string(types[n%len(types)]),
			"recipient_id": recipient.ID,
			"sender_id":    sender.ID,
			"priority":     5,
		}
		if err := client.PublishEvent(event); err != nil {
			log.Error("Failed to publish demo event: %v", err)
			panic(err)
		}
	}

	depth, err := client.GetQueueLength()
	if err != nil {
		log.Warn("Failed to inspect event queue: %v", err)
		return
	}
	log.Info("Published %d demo events, queue depth now %d", count, depth)
}

func seedUsers(db *gorm.DB, log *logger.Logger) []model.UserModel {
	users := []model.UserModel{
		{Email: "ada@example.com", Username: "ada"},
		{Email: "bert@example.com", Username: "bert"},
	}

	for i := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password: %v", err)
			panic(err)
		}
		users[i].Password = string(hash)

		var existing model.UserModel
		err = db.Where("username = ?", users[i].Username).First(&existing).Error
		if err == nil {
			users[i] = existing
			continue
		}

		if err := db.Create(&users[i]).Error; err != nil {
			log.Error("Failed to create user %s: %v", users[i].Username, err)
			panic(err)
		}
		log.Info("Created user %s (%s)", users[i].Username, users[i].ID)
	}

	return users
}

func seedNotifications(db *gorm.DB, log *logger.Logger, users []model.UserModel, perUser int) {
	repo := persistent.NewNotificationRepository(db)

	types := []entity.NotificationType{
		entity.TypeFollowRequest,
		entity.TypePostLike,
		entity.TypePostComment,
		entity.TypeMessage,
		entity.TypeSystemAnnouncement,
	}

	for i, user := range users {
		sender := users[(i+1)%len(users)]
		for n := 0; n < perUser; n++ {
			notificationType := types[n%len(types)]
			category, _ := entity.CategoryForType(string(notificationType))

			notification := &entity.Notification{
				RecipientID: user.ID,
				SenderID:    sender.ID,
				Type:        string(notificationType),
				Title:       fmt.Sprintf("Seeded %s", notificationType),
				Message:     fmt.Sprintf("Seed notification %d for %s", n+1, user.Username),
				Category:    category,
				Priority:    string(entity.PriorityMedium),
				IsRead:      n%3 == 0,
			}
			if err := repo.Create(notification); err != nil {
				log.Error("Failed to seed notification: %v", err)
				panic(err)
			}
		}
		log.Info("Seeded %d notifications for %s", perUser, user.Username)
	}
}
