package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/config"
	"github.com/Flexasaurusrex/art-claps-sub000/internal/middleware"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/storage"

	activityHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/delivery/http"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	activityService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/service"

	adminHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/admin/delivery/http"
	adminRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/admin/repository"
	adminService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/admin/service"

	artistHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/delivery/http"
	artistRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/repository"
	artistService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/service"

	clapHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/delivery/http"
	clapRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/repository"
	clapService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/service"

	followHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/delivery/http"
	followRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/repository"
	followService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/service"

	leaderboardHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/leaderboard/repository"
	leaderboardService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/leaderboard/service"

	notifHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/notification/delivery/http"
	notifRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/notification/repository"
	notifService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/notification/service"

	profileHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/profile/delivery/http"
	profileService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/profile/service"

	referralHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/delivery/http"
	referralRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/repository"
	referralService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/service"

	searchHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/delivery/http"
	searchService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/service"

	statHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/stat/delivery/http"
	statService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/stat/service"

	userHttp "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/delivery/http"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	userService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepository := userRepo.NewUserRepository(db)
	activityRepository := activityRepo.NewActivityRepository(db)
	artistRepository := artistRepo.NewArtistRepository(db)

	var imageStorage storage.ImageStorage
	if cloudinaryStorage, err := storage.NewCloudinaryStorage(); err != nil {
		log.Printf("cloudinary storage unavailable, avatar uploads disabled: %v", err)
	} else {
		imageStorage = cloudinaryStorage
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		host := cfg.MeiliSearchHost
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient = meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}
	searchSvc := searchService.NewSearchService(meiliClient, artistRepository)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	userSvc := userService.NewUserService(userRepository, cfg)
	userHandler := userHttp.NewUserHandler(userSvc)

	pointsSvc := activityService.NewPointsService(activityRepository, userRepository)
	activityHandler := activityHttp.NewActivityHandler(pointsSvc)

	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, userRepository, redisClient)

	clapRepository := clapRepo.NewClapRepository(db)
	clapSvc := clapService.NewClapService(clapRepository, activityRepository, userRepository, notificationSvc, redisClient)
	clapHandler := clapHttp.NewClapHandler(clapSvc)

	followRepository := followRepo.NewFollowRepository(db)
	followSvc := followService.NewFollowService(followRepository, userRepository, notificationSvc)
	followHandler := followHttp.NewFollowHandler(followSvc)

	referralRepository := referralRepo.NewReferralRepository(db)
	referralSvc := referralService.NewReferralService(referralRepository, userRepository, cfg)
	referralHandler := referralHttp.NewReferralHandler(referralSvc)

	artistSvc := artistService.NewArtistService(
		artistRepository,
		userRepository,
		activityRepository,
		clapRepository,
		followRepository,
		clapSvc,
		referralSvc,
		searchSvc,
	)
	artistHandler := artistHttp.NewArtistHandler(artistSvc)

	adminRepository := adminRepo.NewAdminRepository(db)
	adminSvc := adminService.NewAdminService(adminRepository, userRepository, referralSvc, searchSvc, notificationSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	leaderboardRepository := leaderboardRepo.NewLeaderboardRepository(db)
	leaderboardSvc := leaderboardService.NewLeaderboardService(leaderboardRepository, userRepository, redisClient, cfg.LeaderboardCacheTTL)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	profileSvc := profileService.NewProfileService(userRepository, imageStorage, searchSvc)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	statSvc := statService.NewStatService(userRepository, activityRepository)
	statHandler := statHttp.NewStatHandler(statSvc)

	router := gin.New()
	setupCORS(router, cfg)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(cfg)

	// A token is never required on the public API, but when one is presented
	// the mutating handlers prefer its fid over the body fid.
	api := router.Group("/api")
	api.Use(authMiddleware.OptionalAuth())

	auth := api.Group("/auth")
	{
		auth.POST("/signin", userHandler.SignIn)
	}

	api.POST("/user", userHandler.UpsertUser)
	api.GET("/user", userHandler.GetUser)

	api.POST("/activities", activityHandler.RecordActivity)
	api.GET("/activities", activityHandler.GetActivities)

	api.POST("/clap", clapHandler.Clap)

	api.POST("/follow", followHandler.Toggle)
	api.GET("/follow", followHandler.Status)

	api.POST("/artists", artistHandler.Apply)
	api.GET("/artists", artistHandler.ListArtists)
	api.GET("/artists/search", searchHandler.SearchArtists)
	api.GET("/artist", artistHandler.GetProfile)

	api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

	api.GET("/referrals", referralHandler.ListCodes)
	api.POST("/referrals/generate", referralHandler.GenerateCode)

	api.POST("/profile/edit", profileHandler.EditProfile)

	api.GET("/notifications", notificationHandler.GetNotifications)
	api.POST("/notifications/read", notificationHandler.MarkRead)

	api.GET("/stats", statHandler.GetStats)

	ws := api.Group("")
	ws.Use(authMiddleware.RequireAuth())
	{
		ws.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		adminGroup.POST("/pending-artists", adminHandler.ListPendingArtists)
		adminGroup.POST("/approve-artist", adminHandler.ApproveArtist)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for httptest-driven checks.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := []string{"http://localhost:3000"}
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
