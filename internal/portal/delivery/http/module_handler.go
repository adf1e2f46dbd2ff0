package http

import (
	"net/http"

	"ratemynus-portal/internal/portal/dto"
	"ratemynus-portal/internal/portal/service"
	"ratemynus-portal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const browseUnavailableMessage = "The module catalogue is unavailable right now. Please try again later."

// ModuleHandler serves module pages and the JSON view API.
type ModuleHandler struct {
	moduleService service.ModuleService
	logger        *logger.Logger
}

// NewModuleHandler creates a new ModuleHandler.
func NewModuleHandler(moduleService service.ModuleService, logger *logger.Logger) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService, logger: logger}
}

// RegisterRoutes registers the HTML pages on the Echo instance.
func (h *ModuleHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/about", h.About)
	e.GET("/modules", h.ListPage)
	e.GET("/modules/:code", h.DetailPage)
}

// RegisterAPIRoutes registers the JSON view routes to the Echo group.
func (h *ModuleHandler) RegisterAPIRoutes(g *echo.Group) {
	g.GET("", h.GetModules)
	g.GET("/:code", h.GetModule)
}

func (h *ModuleHandler) Home(c echo.Context) error {
	return renderPage(c, h.logger, http.StatusOK, pageHome, Page{})
}

func (h *ModuleHandler) About(c echo.Context) error {
	return renderPage(c, h.logger, http.StatusOK, pageAbout, Page{Title: "About", Active: "about"})
}

// ListPage renders the browse page. An unavailable catalogue is a 502.
func (h *ModuleHandler) ListPage(c echo.Context) error {
	view, err := h.moduleService.ListModules(c.Request().Context())
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to list modules", logger.ErrorField(err))
		return renderPage(c, h.logger, http.StatusBadGateway, pageError, Page{
			Title: "Unavailable",
			Data:  map[string]string{"Message": browseUnavailableMessage},
		})
	}
	return renderPage(c, h.logger, http.StatusOK, pageList, Page{Title: "Modules", Active: "modules", Data: view})
}

// DetailPage renders one module in whichever mode its data calls for.
func (h *ModuleHandler) DetailPage(c echo.Context) error {
	view, err := h.moduleService.GetModuleDetail(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}

	title := view.RequestedCode
	if view.Module != nil {
		title = view.Module.Code + " " + view.Module.Name
	}
	return renderPage(c, h.logger, detailStatus(view), pageDetail, Page{Title: title, Active: "modules", Data: view})
}

// GetModules godoc
// @Summary List modules
// @Description List every module with its banded average when analyzed
// @Tags modules
// @Produce  json
// @Success 200 {object} dto.ModuleListView
// @Failure 502 {object} dto.ErrorResponse
// @Router /modules [get]
func (h *ModuleHandler) GetModules(c echo.Context) error {
	view, err := h.moduleService.ListModules(c.Request().Context())
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to list modules", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: browseUnavailableMessage})
	}
	return c.JSON(http.StatusOK, view)
}

// GetModule godoc
// @Summary Get a module page view
// @Description Get the composed detail view of a module. Unknown codes answer 404 with the not_found view.
// @Tags modules
// @Produce  json
// @Param   code  path    string true    "Module code"
// @Success 200 {object} dto.ModuleDetailView
// @Failure 404 {object} dto.ModuleDetailView
// @Router /modules/{code} [get]
func (h *ModuleHandler) GetModule(c echo.Context) error {
	view, err := h.moduleService.GetModuleDetail(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(detailStatus(view), view)
}

func detailStatus(view *dto.ModuleDetailView) int {
	if view.State == string(service.RenderModeNotFound) {
		return http.StatusNotFound
	}
	return http.StatusOK
}
