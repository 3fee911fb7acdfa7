package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/mailer"
	"github.com/luminaschool/lumina-server/internal/modules/announcements"
	"github.com/luminaschool/lumina-server/internal/modules/auth"
	"github.com/luminaschool/lumina-server/internal/modules/calendar"
	"github.com/luminaschool/lumina-server/internal/modules/members"
	"github.com/luminaschool/lumina-server/internal/modules/repairs"
	"github.com/luminaschool/lumina-server/internal/modules/school"
	"github.com/luminaschool/lumina-server/internal/modules/staffcodes"
	"github.com/luminaschool/lumina-server/internal/password"
	"github.com/luminaschool/lumina-server/internal/session"
)

// RegisterRoutes builds every module's repository/service/handler chain and
// mounts the routes under /api/v1. This is the single place where modules
// are composed; cross-module dependencies (the staff code gate inside
// registration) are wired here through their interfaces.
func (a *App) RegisterRoutes() error {
	e := a.Echo

	// Health check endpoint for container orchestration.
	e.GET("/healthz", a.healthz)

	// --- Session core ---
	codec, err := session.NewTokenCodec(a.Config.Session.SecretKey)
	if err != nil {
		return err
	}
	sessions := session.NewService(session.NewStore(a.Redis), codec, a.Config.Session)

	// --- Shared infrastructure ---
	hasher := password.NewHasher(a.Config.Auth.BcryptCost)
	mail := mailer.New(a.Config.SMTP)

	// --- Module composition ---
	codeRepo := staffcodes.NewStaffCodeRepository(a.DB)
	codeSvc := staffcodes.NewStaffCodeService(codeRepo)

	accountRepo := auth.NewAccountRepository(a.DB)
	authSvc := auth.NewAuthService(
		accountRepo, sessions, hasher, mail, codeSvc,
		a.Config.BaseURL, a.Config.Auth.ResetTokenTTL,
	)

	announcementSvc := announcements.NewAnnouncementService(announcements.NewAnnouncementRepository(a.DB))
	calendarSvc := calendar.NewEventService(calendar.NewEventRepository(a.DB))
	repairSvc := repairs.NewTicketService(repairs.NewTicketRepository(a.DB))
	memberSvc := members.NewMemberService(members.NewMemberRepository(a.DB))
	schoolSvc := school.NewSchoolService(school.NewClient(a.Config.School))

	// --- Route groups ---
	api := e.Group("/api/v1")
	authed := api.Group("", session.RequireSession(sessions))
	staff := authed.Group("", auth.RequireStaff(accountRepo))

	auth.RegisterRoutes(api, auth.NewHandler(authSvc), sessions)
	announcements.RegisterRoutes(authed, staff, announcements.NewHandler(announcementSvc))
	calendar.RegisterRoutes(authed, staff, calendar.NewHandler(calendarSvc))
	repairs.RegisterRoutes(authed, staff, repairs.NewHandler(repairSvc))
	school.RegisterRoutes(authed, school.NewHandler(schoolSvc))
	members.RegisterRoutes(staff, members.NewHandler(memberSvc))
	staffcodes.RegisterRoutes(staff, staffcodes.NewHandler(codeSvc))

	return nil
}

// healthz reports liveness plus dependency reachability. A degraded
// dependency flips the status to 503 so orchestrators stop routing here.
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{"database": "ok", "redis": "ok"}

	if err := a.DB.PingContext(ctx); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, checks)
}
