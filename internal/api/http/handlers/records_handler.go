package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samadhi-app/record-service/internal/api/dto"
	"github.com/samadhi-app/record-service/internal/auth"
	"github.com/samadhi-app/record-service/internal/service"
	apperrors "github.com/samadhi-app/record-service/pkg/util/errorutil"
)

// RecordsHandler manages session report endpoints. All routes require an
// authenticated principal; ownership is enforced in the service.
type RecordsHandler struct {
	service *service.RecordService
}

// NewRecordsHandler constructs handler.
func NewRecordsHandler(recordService *service.RecordService) *RecordsHandler {
	return &RecordsHandler{service: recordService}
}

// Create handles POST /api/record/.
func (h *RecordsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	var req dto.RecordCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.YoutubeURL == "" || req.DurationSec <= 0 {
		return apperrors.NewValidationError("youtube_url and duration_sec required")
	}

	input := service.RecordCreateInput{
		YoutubeURL:  req.YoutubeURL,
		DurationSec: req.DurationSec,
		Score:       req.Score,
	}
	for _, tl := range req.TimeLines {
		input.TimeLines = append(input.TimeLines, service.TimeLineInput{
			YoutubeStartSec: tl.YoutubeStartSec,
			YoutubeEndSec:   tl.YoutubeEndSec,
			Pose:            tl.Pose,
			Score:           tl.Score,
			ImageURL:        tl.Image,
		})
	}

	record, err := h.service.Save(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.RecordFrom(record)))
}

// Get handles GET /api/record/:record_id.
func (h *RecordsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	id, err := strconv.ParseInt(c.Params("record_id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid record id")
	}

	record, err := h.service.FindByID(c.Context(), principal.User.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.RecordFrom(record)))
}

// List handles GET /api/record?page=&size=.
func (h *RecordsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 0)

	records, err := h.service.ListByUser(c.Context(), principal.User.ID, page, size)
	if err != nil {
		return err
	}

	items := make([]dto.RecordResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.RecordFrom(&records[i]))
	}
	return c.JSON(dto.OK(items))
}
