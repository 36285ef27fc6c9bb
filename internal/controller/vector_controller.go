package controller

import (
	"ai-writingassistant-be/internal/dto"
	"ai-writingassistant-be/internal/pkg/serverutils"
	"ai-writingassistant-be/internal/service"
	"ai-writingassistant-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IVectorController interface {
	RegisterRoutes(r fiber.Router)
	IngestJSON(ctx *fiber.Ctx) error
	IngestText(ctx *fiber.Ctx) error
	SearchPassages(ctx *fiber.Ctx) error
}

type vectorController struct {
	vectorService service.IVectorService
}

func NewVectorController(vectorService service.IVectorService) IVectorController {
	return &vectorController{
		vectorService: vectorService,
	}
}

func (c *vectorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/vector-ops/v1")
	h.Post("ingest-json", c.IngestJSON)
	h.Post("ingest-text", c.IngestText)
	h.Post("search-passages", c.SearchPassages)
}

func (c *vectorController) IngestJSON(ctx *fiber.Ctx) error {
	var passages []dto.IngestPassageRequest
	if err := ctx.BodyParser(&passages); err != nil {
		return err
	}
	if len(passages) == 0 {
		return serverutils.NewBadRequestError("passages array must not be empty")
	}
	for _, p := range passages {
		if err := serverutils.ValidateRequest(p); err != nil {
			return err
		}
	}

	res, err := c.vectorService.IngestJSON(ctx.Context(), passages)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest passages", res))
}

func (c *vectorController) IngestText(ctx *fiber.Ctx) error {
	var req dto.IngestTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.vectorService.IngestText(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue text for ingestion", res))
}

func (c *vectorController) SearchPassages(ctx *fiber.Ctx) error {
	var req dto.SearchPassagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	k := req.K
	if k <= 0 {
		k = 5
	}

	res, err := c.vectorService.Search(ctx.Context(), req.Query, k, store.CollectionPassages)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search passages", res))
}
