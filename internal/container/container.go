package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/redis/go-redis/v9"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/melvink/api/internal/config"
	"github.com/melvink/api/internal/helpers"
	"github.com/melvink/api/internal/models"
	"github.com/melvink/api/internal/schedule"
	"github.com/melvink/api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	RedisClient    *redis.Client
	Cloudinary     *cloudinary.Cloudinary

	Calendar *schedule.Calendar

	AuthService    *services.AuthService
	BookingService *services.BookingService
	ClientService  *services.ClientService
	DesignService  *services.DesignService
	ContentService *services.ContentService
	HandoffService *services.HandoffService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient, cfg.SupabaseURL, cfg.SupabaseAnonKey)
	mongoRepo := models.MongodbNewRepo(mongoDBClient)
	uploader := helpers.NewCloudinaryUploader(cld)

	var sessionStore models.SessionStore
	if cfg.UseMockAuth() {
		sessionStore = models.NewMockSessionStore(cfg.MockAuthFile)
	} else {
		sessionStore = models.NewGotrueStore(supa)
	}

	return &Container{
		Config:         cfg,
		Logger:         logger,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,
		RedisClient:    redisClient,
		Cloudinary:     cld,
		Calendar:       schedule.DefaultCalendar(),
		AuthService:    services.NewAuthService(sessionStore),
		BookingService: services.NewBookingService(supa, supa, mongoRepo, uploader, logger),
		ClientService:  services.NewClientService(supa, supa),
		DesignService:  services.NewDesignService(supa, supa, uploader),
		ContentService: services.NewContentService(cfg.ContentDir),
		HandoffService: services.NewHandoffService(redisClient),
	}
}
