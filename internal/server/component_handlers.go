package server

import (
	"barrique/internal/models"
	"barrique/internal/service"

	"github.com/gofiber/fiber/v2"
)

// componentHandlers serves one recipe component collection. The five
// collections share the same routes under different path segments.
type componentHandlers[T any, P service.ComponentPtr[T]] struct {
	svc *service.ComponentService[T, P]
}

// registerComponentRoutes mounts:
//
//	GET|POST        /recipes/:recipeId/<path>
//	GET|PUT|DELETE  /recipes/:recipeId/<path>/:id
//	GET             /users/<path>
func registerComponentRoutes[T any, P service.ComponentPtr[T]](
	r fiber.Router, path string, svc *service.ComponentService[T, P], gates ...fiber.Handler,
) {
	h := componentHandlers[T, P]{svc: svc}
	with := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, gates...), handler)
	}

	collection := "/recipes/:recipeId/" + path
	r.Get(collection, with(h.list)...)
	r.Post(collection, with(h.create)...)
	r.Get(collection+"/:id", with(h.get)...)
	r.Put(collection+"/:id", with(h.update)...)
	r.Delete(collection+"/:id", with(h.delete)...)
	r.Get("/users/"+path, with(h.listMine)...)
}

func (h componentHandlers[T, P]) ids(c *fiber.Ctx) (uint, uint, error) {
	recipeID, err := parseID(c, "recipeId")
	if err != nil {
		return 0, 0, err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return recipeID, id, nil
}

func (h componentHandlers[T, P]) listMine(c *fiber.Ctx) error {
	items, err := h.svc.ListForOwner(c.UserContext(), callerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(items)
}

func (h componentHandlers[T, P]) list(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "recipeId")
	if err != nil {
		return nil
	}

	items, err := h.svc.ListForParent(c.UserContext(), callerID(c), recipeID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(items)
}

func (h componentHandlers[T, P]) get(c *fiber.Ctx) error {
	recipeID, id, err := h.ids(c)
	if err != nil {
		return nil
	}

	item, err := h.svc.Get(c.UserContext(), callerID(c), recipeID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(item)
}

func (h componentHandlers[T, P]) create(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "recipeId")
	if err != nil {
		return nil
	}
	req := new(T)
	if err := parseBody(c, req); err != nil {
		return nil
	}

	item, err := h.svc.Create(c.UserContext(), callerID(c), recipeID, req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(item)
}

func (h componentHandlers[T, P]) update(c *fiber.Ctx) error {
	recipeID, id, err := h.ids(c)
	if err != nil {
		return nil
	}
	req := new(T)
	if err := parseBody(c, req); err != nil {
		return nil
	}

	item, err := h.svc.Update(c.UserContext(), callerID(c), recipeID, id, req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(item)
}

func (h componentHandlers[T, P]) delete(c *fiber.Ctx) error {
	recipeID, id, err := h.ids(c)
	if err != nil {
		return nil
	}

	if err := h.svc.Delete(c.UserContext(), callerID(c), recipeID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": h.svc.Name() + " deleted successfully."})
}
