package users

import (
	"errors"
	"net/url"
	"strings"

	"ai-access-manager/core/identity"
	"ai-access-manager/core/logger"
	"ai-access-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for user reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the users routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/users")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleAdd)
	group.Get("/:email", h.HandleInfo)
	group.Post("/:email/assign", h.HandleAssign)
	group.Delete("/:email", h.HandleRemove)

	app.Get("/invites", h.HandleInvites)
	app.Get("/providers/health", h.HandleHealth)
}

// AddRequest is the body of POST /users.
type AddRequest struct {
	Email     string   `json:"email"`
	Providers []string `json:"providers"`
}

// HandleList returns the merged user list.
// @Summary List Users
// @Description Returns every user merged across providers. The list is cached in memory; refresh=true forces a sync.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param filter query string false "Email substring"
// @Param provider query string false "Provider names, comma separated"
// @Param refresh query bool false "Bypass the cache"
// @Success 200 {object} reconcile.Report
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} reconcile.Report "Every provider failed"
// @Router /users [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	report, err := h.service.List(c.UserContext(), c.Query("filter"), providersParam(c), c.QueryBool("refresh"))
	return h.respond(c, report, err)
}

// HandleInfo returns the live state of one user.
// @Summary Get User Info
// @Description Looks the user up on every provider: pending invite, membership, workspace, key hints and spend.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param email path string true "User email"
// @Param provider query string false "Provider names, comma separated"
// @Success 200 {object} reconcile.Report
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /users/{email} [get]
func (h *Handler) HandleInfo(c *fiber.Ctx) error {
	report, err := h.service.Info(c.UserContext(), emailParam(c), providersParam(c))
	return h.respond(c, report, err)
}

// HandleAdd invites a user.
// @Summary Add User
// @Description Invites the user on every provider where they are neither a member nor invited.
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body AddRequest true "User to invite"
// @Success 200 {object} reconcile.Report
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /users [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	var req AddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	providers := req.Providers
	if len(providers) == 0 {
		providers = providersParam(c)
	}
	report, err := h.service.Add(c.UserContext(), req.Email, providers)
	return h.respond(c, report, err)
}

// HandleAssign gives a member their own workspace.
// @Summary Assign Workspace
// @Description Creates a workspace for the member on providers where they have none. Non-members are reported as errors.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param email path string true "User email"
// @Param provider query string false "Provider names, comma separated"
// @Success 200 {object} reconcile.Report
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /users/{email}/assign [post]
func (h *Handler) HandleAssign(c *fiber.Ctx) error {
	report, err := h.service.Assign(c.UserContext(), emailParam(c), providersParam(c))
	return h.respond(c, report, err)
}

// HandleRemove removes a user.
// @Summary Remove User
// @Description Archives the user's workspace then deletes the account, or deletes a pending invite. With dry_run=true only the plan is returned.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param email path string true "User email"
// @Param provider query string false "Provider names, comma separated"
// @Param dry_run query bool false "Return the plan without executing it"
// @Success 200 {object} reconcile.Report
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /users/{email} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if c.QueryBool("dry_run") {
		plan, err := h.service.PlanRemoval(c.UserContext(), emailParam(c), providersParam(c))
		if err != nil {
			return h.respond(c, nil, err)
		}
		return c.JSON(plan)
	}

	l.Info("Removing user", zap.String("email", emailParam(c)))
	report, err := h.service.Remove(c.UserContext(), emailParam(c), providersParam(c))
	return h.respond(c, report, err)
}

// HandleInvites lists invites.
// @Summary List Invites
// @Description Lists invites in one status across providers.
// @Tags invites
// @Security ApiKeyAuth
// @Produce json
// @Param status query string false "pending (default), accepted, expired or deleted"
// @Param filter query string false "Email substring"
// @Param provider query string false "Provider names, comma separated"
// @Success 200 {object} reconcile.Report
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /invites [get]
func (h *Handler) HandleInvites(c *fiber.Ctx) error {
	report, err := h.service.Invites(c.UserContext(), reconcile.InviteOptions{
		Status:    c.Query("status"),
		Filter:    c.Query("filter"),
		Providers: providersParam(c),
	})
	return h.respond(c, report, err)
}

// HandleHealth checks provider reachability.
// @Summary Provider Health
// @Description Lists members once per provider to check credentials and connectivity.
// @Tags providers
// @Security ApiKeyAuth
// @Produce json
// @Param provider query string false "Provider names, comma separated"
// @Success 200 {object} reconcile.Report
// @Failure 502 {object} reconcile.Report "Every provider failed"
// @Router /providers/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report, err := h.service.Health(c.UserContext(), providersParam(c))
	return h.respond(c, report, err)
}

func (h *Handler) respond(c *fiber.Ctx, report *reconcile.Report, err error) error {
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, identity.ErrInvalidEmail),
			errors.Is(err, identity.ErrInvalidStatus),
			errors.Is(err, reconcile.ErrUnknownProvider):
			status = fiber.StatusBadRequest
		case errors.Is(err, reconcile.ErrNoProviders):
			status = fiber.StatusServiceUnavailable
		default:
			logger.WithRayID(h.service.logger, c).Error("Request failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	status := fiber.StatusOK
	if len(report.Outcomes) > 0 && report.Count(reconcile.StatusError) == len(report.Outcomes) {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(report)
}

func emailParam(c *fiber.Ctx) string {
	raw := c.Params("email")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// providersParam accepts ?provider=a&provider=b as well as ?provider=a,b.
func providersParam(c *fiber.Ctx) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("provider") {
		for _, name := range strings.Split(string(raw), ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
