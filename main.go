package main

import (
	"log"

	api "lifehub-backend/cmd/api"
	accountdomain "lifehub-backend/internal/account/domain"
	accountRepo "lifehub-backend/internal/account/repository"
	accountUsecase "lifehub-backend/internal/account/usecase"
	authdomain "lifehub-backend/internal/auth/domain"
	authRepo "lifehub-backend/internal/auth/repository"
	authUsecase "lifehub-backend/internal/auth/usecase"
	caldomain "lifehub-backend/internal/calendar/domain"
	calRepo "lifehub-backend/internal/calendar/repository"
	calUsecase "lifehub-backend/internal/calendar/usecase"
	checkindomain "lifehub-backend/internal/checkin/domain"
	checkinRepo "lifehub-backend/internal/checkin/repository"
	checkinUsecase "lifehub-backend/internal/checkin/usecase"
	dashboardUsecase "lifehub-backend/internal/dashboard/usecase"
	goaldomain "lifehub-backend/internal/goal/domain"
	goalRepo "lifehub-backend/internal/goal/repository"
	goalUsecase "lifehub-backend/internal/goal/usecase"
	habitdomain "lifehub-backend/internal/habit/domain"
	habitRepo "lifehub-backend/internal/habit/repository"
	habitUsecase "lifehub-backend/internal/habit/usecase"
	maildomain "lifehub-backend/internal/mail/domain"
	mailRepo "lifehub-backend/internal/mail/repository"
	mailUsecase "lifehub-backend/internal/mail/usecase"
	notedomain "lifehub-backend/internal/note/domain"
	noteRepo "lifehub-backend/internal/note/repository"
	noteUsecase "lifehub-backend/internal/note/usecase"
	syncUsecase "lifehub-backend/internal/syncer/usecase"
	taskdomain "lifehub-backend/internal/task/domain"
	taskRepo "lifehub-backend/internal/task/repository"
	taskUsecase "lifehub-backend/internal/task/usecase"
	"lifehub-backend/internal/task/scheduler"
	"lifehub-backend/pkg/config"
	"lifehub-backend/pkg/database"
	"lifehub-backend/pkg/fcm"
	"lifehub-backend/pkg/gcal"
	"lifehub-backend/pkg/gmail"
	"lifehub-backend/pkg/googleapi"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{}, &authdomain.RefreshToken{}, &authdomain.FCMToken{},
		&accountdomain.Account{},
		&maildomain.EmailMessage{}, &maildomain.EmailStats{},
		&caldomain.CalendarEvent{}, &caldomain.CalendarStats{},
		&taskdomain.Task{},
		&habitdomain.Habit{}, &habitdomain.HabitEntry{},
		&notedomain.Note{}, &goaldomain.Goal{},
		&checkindomain.DailyCheckin{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories
	userRepository := authRepo.NewUserRepository(db)
	fcmTokenRepository := authRepo.NewFCMTokenRepository(db)
	accountRepository := accountRepo.NewAccountRepository(db)
	messageRepository := mailRepo.NewEmailMessageRepository(db)
	emailStatsRepository := mailRepo.NewEmailStatsRepository(db)
	eventRepository := calRepo.NewCalendarEventRepository(db)
	calStatsRepository := calRepo.NewCalendarStatsRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)
	habitRepository := habitRepo.NewGormHabitRepository(db)
	noteRepository := noteRepo.NewGormNoteRepository(db)
	goalRepository := goalRepo.NewGormGoalRepository(db)
	checkinRepository := checkinRepo.NewGormCheckinRepository(db)

	// Google provider clients
	creds := googleapi.Credentials{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURI:  cfg.GoogleRedirectURI,
	}
	gmailService := gmail.NewService(creds)
	gcalService := gcal.NewService(creds)

	// Initialize use cases
	authUc := authUsecase.NewAuthUsecase(userRepository, fcmTokenRepository, cfg)
	accountUc := accountUsecase.NewAccountUsecase(accountRepository, creds, gmailService)
	mailUc := mailUsecase.NewMailUsecase(accountUc, gmailService, messageRepository, emailStatsRepository)
	calendarUc := calUsecase.NewCalendarUsecase(accountUc, gcalService, eventRepository, calStatsRepository)
	syncUc := syncUsecase.NewSyncUsecase(
		accountRepository, gmailService, gcalService,
		messageRepository, emailStatsRepository,
		eventRepository, calStatsRepository,
		cfg.SyncWindowDays, cfg.SyncBatchSize,
	)
	taskUc := taskUsecase.NewTaskUsecase(taskRepository)
	habitUc := habitUsecase.NewHabitUsecase(habitRepository)
	noteUc := noteUsecase.NewNoteUsecase(noteRepository)
	goalUc := goalUsecase.NewGoalUsecase(goalRepository)
	checkinUc := checkinUsecase.NewCheckinUsecase(checkinRepository)
	dashboardUc := dashboardUsecase.NewDashboardUsecase(taskUc, habitUc, checkinUc, calendarUc, mailUc)

	// Task reminder push notifications (optional)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	} else {
		log.Println("[WARN] No Firebase credentials configured, FCM disabled")
	}
	reminderScheduler := scheduler.NewTaskReminderScheduler(taskRepository, fcmTokenRepository, fcmClient)
	reminderScheduler.Start()
	defer reminderScheduler.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(api.Usecases{
		Auth:      authUc,
		Accounts:  accountUc,
		Mail:      mailUc,
		Calendar:  calendarUc,
		Sync:      syncUc,
		Tasks:     taskUc,
		Habits:    habitUc,
		Notes:     noteUc,
		Goals:     goalUc,
		Checkins:  checkinUc,
		Dashboard: dashboardUc,
	}, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
