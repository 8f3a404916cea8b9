package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/storefront/internal/core/ports"
)

// BookHandler serves the catalog and its admin edits.
type BookHandler struct {
	catalog ports.CatalogService
}

func NewBookHandler(catalog ports.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// List handles GET /api/books.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {array}   domain.Book
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.catalog.ListBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Get handles GET /api/books/:id.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book id"
// @Success      200  {object}  domain.Book
// @Failure      404  {object}  errorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	book, err := h.catalog.GetBook(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Create handles POST /api/admin/books.
//
// @Summary      Create a book
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      bookRequest  true  "Book"
// @Success      201   {object}  domain.Book
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	book, err := h.catalog.CreateBook(c.Request().Context(), toBookInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Update handles PUT /api/admin/books/:id.
//
// @Summary      Update a book
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Book id"
// @Param        body  body      bookRequest  true  "Book"
// @Success      200   {object}  domain.Book
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req bookRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	book, err := h.catalog.UpdateBook(c.Request().Context(), id, toBookInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /api/admin/books/:id.
//
// @Summary      Delete a book
// @Tags         admin
// @Param        id   path  int  true  "Book id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteBook(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
