package account

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/crm/internal/platform/apperr"
	"github.com/clinic/crm/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.POST("/auth/refresh", h.Refresh)

	api.GET("/doctors", h.listRole(RoleDoctor))
	api.GET("/receptions", h.listRole(RoleReception))
	api.GET("/admins", h.listRole(RoleAdmin))

	api.GET("/accounts/:id", h.Get)
	api.PUT("/accounts/:id", h.Update)
	api.DELETE("/accounts/:id", h.Delete)
}

type registerRequest struct {
	FullName       string      `json:"full_name"`
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	Role           string      `json:"role"`
	Phone          *string     `json:"phone_number"`
	ProfilePicture string      `json:"profile_picture"`
	Age            *int        `json:"age"`
	Experience     *int        `json:"experience"`
	DepartmentID   *uuid.UUID  `json:"department_id"`
	Bonus          *int        `json:"bonus"`
	SpecialtyIDs   []uuid.UUID `json:"specialty_ids"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a := Account{
		FullName:       req.FullName,
		Email:          req.Email,
		Role:           req.Role,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
		Age:            req.Age,
		Experience:     req.Experience,
		DepartmentID:   req.DepartmentID,
		Bonus:          req.Bonus,
		SpecialtyIDs:   req.SpecialtyIDs,
	}
	res, err := h.svc.Register(c.Request().Context(), &a, req.Password)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, res)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, res)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"detail":    "logged out",
		"logged_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	access, err := h.svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"access": access})
}

func (h *Handler) listRole(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		pg := pagination.FromContext(c)
		accounts, total, err := h.svc.ListByRole(c.Request().Context(), role, pg.Limit, pg.Offset)
		if err != nil {
			return apperr.ToHTTP(err)
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(accounts, total, pg.Limit, pg.Offset))
	}
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var a Account
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = id
	if err := h.svc.Update(c.Request().Context(), &a); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
