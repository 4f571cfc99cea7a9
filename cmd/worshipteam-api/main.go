package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/schul92/worshipteam-api/internal/config"
	"github.com/schul92/worshipteam-api/internal/database"
	"github.com/schul92/worshipteam-api/internal/handlers"
	"github.com/schul92/worshipteam-api/internal/logger"
	authmw "github.com/schul92/worshipteam-api/internal/middleware"
	"github.com/schul92/worshipteam-api/internal/notify"
	"github.com/schul92/worshipteam-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog := logger.New(cfg.Env)
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		zlog.Fatalw("Failed to run migrations", "error", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	userService := services.NewUserService(db)
	teamService := services.NewTeamService(db)
	membershipService := services.NewMembershipService(db)
	roleService := services.NewRoleService(db)
	assignmentService := services.NewAssignmentService(db)
	notifier := notify.NewEmailNotifier(cfg.SMTP, assignmentService, zlog)
	scheduleService := services.NewScheduleService(db, notifier, zlog)
	availabilityService := services.NewAvailabilityService(db)
	invitationService := services.NewInvitationService(db, cfg.InviteExpiry)
	transferService := services.NewTransferService(db, cfg.TransferExpiry)

	sessionHandler := handlers.NewSessionHandler(userService, jwtService, int64(cfg.JWTAccessExpiry.Seconds()))
	teamHandler := handlers.NewTeamHandler(teamService)
	membershipHandler := handlers.NewMembershipHandler(membershipService, teamService)
	roleHandler := handlers.NewRoleHandler(roleService, teamService)
	serviceHandler := handlers.NewServiceHandler(scheduleService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	transferHandler := handlers.NewTransferHandler(transferService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	api.Post("/sessions", sessionHandler.Create)
	api.Get("/invitations/:token", invitationHandler.Preview)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/users/me", sessionHandler.Me)
	protected.Patch("/users/me", sessionHandler.UpdateMe)

	protected.Get("/teams", teamHandler.List)
	protected.Post("/teams", teamHandler.Create)
	protected.Post("/teams/join", teamHandler.Join)
	protected.Get("/teams/:id", teamHandler.Get)
	protected.Patch("/teams/:id", teamHandler.Update)
	protected.Delete("/teams/:id", teamHandler.Delete)
	protected.Post("/teams/:id/invite-code", teamHandler.RegenerateInviteCode)
	protected.Post("/teams/:id/leave", membershipHandler.Leave)

	protected.Get("/teams/:id/members", membershipHandler.List)
	protected.Patch("/teams/:id/members/:memberId/role", membershipHandler.ChangeRole)
	protected.Delete("/teams/:id/members/:memberId", membershipHandler.Remove)

	protected.Get("/teams/:id/roles", roleHandler.List)
	protected.Post("/teams/:id/roles", roleHandler.Create)
	protected.Patch("/teams/:id/roles/:roleId", roleHandler.Update)
	protected.Get("/teams/:id/members/:memberId/roles", roleHandler.MemberRoles)
	protected.Post("/teams/:id/members/:memberId/roles", roleHandler.AssignToMember)
	protected.Delete("/teams/:id/members/:memberId/roles/:roleId", roleHandler.RemoveFromMember)

	protected.Get("/teams/:id/services", serviceHandler.List)
	protected.Post("/teams/:id/services", serviceHandler.Create)
	protected.Get("/services/:serviceId", serviceHandler.Get)
	protected.Patch("/services/:serviceId", serviceHandler.Update)
	protected.Delete("/services/:serviceId", serviceHandler.Delete)
	protected.Post("/services/:serviceId/publish", serviceHandler.Publish)
	protected.Post("/services/:serviceId/complete", serviceHandler.Complete)
	protected.Post("/services/:serviceId/cancel", serviceHandler.Cancel)

	protected.Get("/teams/:id/service-types", serviceHandler.ListTypes)
	protected.Post("/teams/:id/service-types", serviceHandler.CreateType)

	protected.Get("/services/:serviceId/assignments", assignmentHandler.ListForService)
	protected.Post("/services/:serviceId/assignments", assignmentHandler.Create)
	protected.Post("/assignments/:assignmentId/respond", assignmentHandler.Respond)
	protected.Delete("/assignments/:assignmentId", assignmentHandler.Delete)
	protected.Get("/teams/:id/assignments/mine", assignmentHandler.ListMine)

	protected.Get("/teams/:id/availability", availabilityHandler.ListMine)
	protected.Post("/teams/:id/availability", availabilityHandler.Set)
	protected.Get("/teams/:id/availability/requests", availabilityHandler.Requests)
	protected.Get("/teams/:id/availability/dashboard", availabilityHandler.Dashboard)

	protected.Get("/teams/:id/invitations", invitationHandler.List)
	protected.Post("/teams/:id/invitations", invitationHandler.Create)
	protected.Get("/invitations/mine", invitationHandler.ListMine)
	protected.Post("/invitations/accept", invitationHandler.Accept)
	protected.Delete("/invitations/:invitationId", invitationHandler.Cancel)

	protected.Post("/teams/:id/transfers", transferHandler.Initiate)
	protected.Get("/transfers/:transferId", transferHandler.Get)
	protected.Post("/transfers/:transferId/complete", transferHandler.Complete)
	protected.Post("/transfers/:transferId/cancel", transferHandler.Cancel)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		zlog.Infow("Server starting", "addr", addr)
		if err := app.Run(addr); err != nil {
			zlog.Fatalw("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")
}
