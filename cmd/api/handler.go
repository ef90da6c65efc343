package api

import (
	"log"

	"github.com/gin-gonic/gin"

	accountDelivery "lifehub-backend/internal/account/delivery"
	accountUsecasePkg "lifehub-backend/internal/account/usecase"
	assistantDelivery "lifehub-backend/internal/assistant/delivery"
	assistantUsecasePkg "lifehub-backend/internal/assistant/usecase"
	authUsecasePkg "lifehub-backend/internal/auth/usecase"
	calendarDelivery "lifehub-backend/internal/calendar/delivery"
	calendarUsecasePkg "lifehub-backend/internal/calendar/usecase"
	checkinDelivery "lifehub-backend/internal/checkin/delivery"
	checkinUsecasePkg "lifehub-backend/internal/checkin/usecase"
	dashboardDelivery "lifehub-backend/internal/dashboard/delivery"
	dashboardUsecasePkg "lifehub-backend/internal/dashboard/usecase"
	goalDelivery "lifehub-backend/internal/goal/delivery"
	goalUsecasePkg "lifehub-backend/internal/goal/usecase"
	habitDelivery "lifehub-backend/internal/habit/delivery"
	habitUsecasePkg "lifehub-backend/internal/habit/usecase"
	mailDelivery "lifehub-backend/internal/mail/delivery"
	mailUsecasePkg "lifehub-backend/internal/mail/usecase"
	noteDelivery "lifehub-backend/internal/note/delivery"
	noteUsecasePkg "lifehub-backend/internal/note/usecase"
	syncDelivery "lifehub-backend/internal/syncer/delivery"
	syncUsecasePkg "lifehub-backend/internal/syncer/usecase"
	taskDelivery "lifehub-backend/internal/task/delivery"
	taskUsecasePkg "lifehub-backend/internal/task/usecase"
	"lifehub-backend/pkg/ai"
	"lifehub-backend/pkg/config"
)

// Handler owns the HTTP surface: it builds every feature handler and serves
// the gin router.
type Handler struct {
	authUsecase authUsecasePkg.AuthUsecase
	config      *config.Config

	accountHandler   *accountDelivery.AccountHandler
	mailHandler      *mailDelivery.MailHandler
	calendarHandler  *calendarDelivery.CalendarHandler
	syncHandler      *syncDelivery.SyncHandler
	taskHandler      *taskDelivery.TaskHandler
	habitHandler     *habitDelivery.HabitHandler
	noteHandler      *noteDelivery.NoteHandler
	goalHandler      *goalDelivery.GoalHandler
	checkinHandler   *checkinDelivery.CheckinHandler
	dashboardHandler *dashboardDelivery.DashboardHandler
	assistantHandler *assistantDelivery.AssistantHandler
}

type Usecases struct {
	Auth      authUsecasePkg.AuthUsecase
	Accounts  accountUsecasePkg.AccountUsecase
	Mail      mailUsecasePkg.MailUsecase
	Calendar  calendarUsecasePkg.CalendarUsecase
	Sync      syncUsecasePkg.SyncUsecase
	Tasks     taskUsecasePkg.TaskUsecase
	Habits    habitUsecasePkg.HabitUsecase
	Notes     noteUsecasePkg.NoteUsecase
	Goals     goalUsecasePkg.GoalUsecase
	Checkins  checkinUsecasePkg.CheckinUsecase
	Dashboard dashboardUsecasePkg.DashboardUsecase
}

func NewHandler(uc Usecases, cfg *config.Config) *Handler {
	// The assistant is wired here so a classifier init failure only loses
	// voice commands, never the whole API
	var assistantHandler *assistantDelivery.AssistantHandler
	classifier, err := ai.NewIntentClassifier(ai.ProviderType(cfg.AIProvider), cfg.GeminiApiKey, cfg.OllamaBaseURL, cfg.OllamaModel)
	if err != nil {
		log.Printf("[WARN] Intent classifier unavailable, voice commands disabled: %v", err)
	} else {
		assistantUc := assistantUsecasePkg.NewAssistantUsecase(classifier, uc.Tasks, uc.Habits, uc.Checkins, uc.Calendar, uc.Mail)
		assistantHandler = assistantDelivery.NewAssistantHandler(assistantUc)
	}

	return &Handler{
		authUsecase:      uc.Auth,
		config:           cfg,
		accountHandler:   accountDelivery.NewAccountHandler(uc.Accounts),
		mailHandler:      mailDelivery.NewMailHandler(uc.Mail),
		calendarHandler:  calendarDelivery.NewCalendarHandler(uc.Calendar),
		syncHandler:      syncDelivery.NewSyncHandler(uc.Sync, cfg.SyncAuthToken),
		taskHandler:      taskDelivery.NewTaskHandler(uc.Tasks),
		habitHandler:     habitDelivery.NewHabitHandler(uc.Habits),
		noteHandler:      noteDelivery.NewNoteHandler(uc.Notes),
		goalHandler:      goalDelivery.NewGoalHandler(uc.Goals),
		checkinHandler:   checkinDelivery.NewCheckinHandler(uc.Checkins),
		dashboardHandler: dashboardDelivery.NewDashboardHandler(uc.Dashboard),
		assistantHandler: assistantHandler,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}
