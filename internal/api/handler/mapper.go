package handler

import "github.com/bookshelf/storefront/internal/core/domain"

func toBookInput(req bookRequest) domain.BookInput {
	return domain.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Description: req.Description,
		Genre:       req.Genre,
		Pages:       req.Pages,
		PublishYear: req.PublishYear,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		RentalPrice: req.RentalPrice,
		Stock:       req.Stock,
	}
}

func toProfileUpdate(req profileRequest) domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}
}

func toSessionResponse(s domain.Session) sessionResponse {
	resp := sessionResponse{
		Authenticated: s.Authenticated,
		Loading:       s.Loading,
	}
	if s.Authenticated {
		resp.Role = s.Role
		resp.User = s.User
	}
	return resp
}
