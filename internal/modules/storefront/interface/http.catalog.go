package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	reviewdomain "deliveryClient/internal/modules/reviews/domain"
	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/application/usecase"
)

// listRestaurants serves the restaurant mirror. The first call, an ownerId filter or
// refresh=true reloads it from the backend; open=true keeps only restaurants open right now.
func (h *Handler) listRestaurants(c echo.Context) error {
	restaurants := h.storefront.Restaurants
	ownerID := strings.TrimSpace(c.QueryParam("ownerId"))
	if ownerID != "" || queryFlag(c, "refresh") || restaurants.State() == usecase.StateUninitialized {
		if err := restaurants.Refresh(c.Request().Context(), port.ListFilter{OwnerID: ownerID}); err != nil && restaurants.Len() == 0 {
			return h.fail(c, "list restaurants", err)
		}
	}
	if queryFlag(c, "open") {
		return c.JSON(http.StatusOK, newCollectionResponse(restaurants, restaurants.OpenNow()))
	}
	return c.JSON(http.StatusOK, newCollectionResponse(restaurants, restaurants.Items()))
}

func (h *Handler) getRestaurant(c echo.Context) error {
	restaurant, err := h.storefront.Restaurants.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "get restaurant", err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

func (h *Handler) restaurantStatus(c echo.Context) error {
	status, err := h.storefront.Restaurants.Status(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "restaurant status", err)
	}
	return c.JSON(http.StatusOK, status)
}

func (h *Handler) restaurantDishes(c echo.Context) error {
	dishes := h.storefront.Dishes
	if dishes.State() == usecase.StateUninitialized || queryFlag(c, "refresh") {
		if err := dishes.Refresh(c.Request().Context(), port.ListFilter{}); err != nil && dishes.Len() == 0 {
			return h.fail(c, "list dishes", err)
		}
	}
	return c.JSON(http.StatusOK, newCollectionResponse(dishes, dishes.ForRestaurant(c.Param("id"))))
}

func (h *Handler) restaurantReviews(c echo.Context) error {
	reviews := h.storefront.Reviews
	restaurantID := c.Param("id")
	if err := reviews.Refresh(c.Request().Context(), port.ListFilter{RestaurantID: restaurantID}); err != nil {
		return h.fail(c, "list reviews", err)
	}
	return c.JSON(http.StatusOK, newCollectionResponse(reviews, reviews.ForRestaurant(restaurantID)))
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	OrderID string `json:"orderId"`
}

func (h *Handler) createReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	created, err := h.storefront.Reviews.Create(c.Request().Context(), reviewdomain.Review{
		RestaurantID: c.Param("id"),
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
		OrderID:      strings.TrimSpace(req.OrderID),
	})
	if err != nil {
		return h.fail(c, "create review", err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	id := c.Param("id")
	review, ok := h.storefront.Reviews.Find(id)
	if !ok {
		review = reviewdomain.Review{ID: id}
	}
	review.Rating = req.Rating
	review.Comment = strings.TrimSpace(req.Comment)
	updated, err := h.storefront.Reviews.Update(c.Request().Context(), review)
	if err != nil {
		return h.fail(c, "update review", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteReview(c echo.Context) error {
	if err := h.storefront.Reviews.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, "delete review", err)
	}
	return c.NoContent(http.StatusNoContent)
}
