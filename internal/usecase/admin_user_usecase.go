package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
)

// 管理画面のユーザー管理。作成は持たない（登録は対象外）。
type AdminUserUsecase struct {
	userRepo repo.UserRepository
	cartUC   *CartUsecase
}

func NewAdminUserUsecase(userRepo repo.UserRepository, cartUC *CartUsecase) *AdminUserUsecase {
	return &AdminUserUsecase{userRepo: userRepo, cartUC: cartUC}
}

type ListUsersInput struct {
	Page          int
	Limit         int
	Search        string
	EmailVerified string
	Sort          string
}

type UserListOutput struct {
	Items []repo.UserListRow `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type UserDetailOutput struct {
	User model.User `json:"user"`
	Cart CartView   `json:"cart"`
}

func (u *AdminUserUsecase) List(ctx context.Context, in ListUsersInput) (UserListOutput, error) {
	if in.Page < 1 {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	switch in.EmailVerified {
	case "", "all", "verified", "unverified":
	default:
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email_verified")
	}

	switch in.Sort {
	case "", "latest", "oldest", "name_asc", "name_desc", "email_asc", "email_desc":
	default:
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	rows, total, err := u.userRepo.List(ctx, repo.UserListQuery{
		Page:          in.Page,
		Limit:         in.Limit,
		Search:        strings.TrimSpace(in.Search),
		EmailVerified: in.EmailVerified,
		Sort:          in.Sort,
	})
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return UserListOutput{Items: rows, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

// ユーザー詳細（カートの中身付き）。管理者は表示対象外。
func (u *AdminUserUsecase) Show(ctx context.Context, userID int64) (UserDetailOutput, error) {
	if userID <= 0 {
		return UserDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	target, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserDetailOutput{}, &NotFoundError{Resource: "user"}
	}
	if err != nil {
		return UserDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if target.IsAdmin {
		//管理者は「存在しない扱い」にする
		return UserDetailOutput{}, &NotFoundError{Resource: "user"}
	}

	cart, err := u.cartUC.View(ctx, target.ID)
	if err != nil {
		return UserDetailOutput{}, err
	}

	return UserDetailOutput{User: target, Cart: cart}, nil
}

// 削除。管理者と自分自身は消せない。
func (u *AdminUserUsecase) Delete(ctx context.Context, actorAdminID int64, userID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	target, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Resource: "user"}
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if target.IsAdmin {
		return NewHTTPError(http.StatusForbidden, "cannot delete admin users")
	}
	if target.ID == actorAdminID {
		return NewHTTPError(http.StatusForbidden, "you cannot delete your own account")
	}

	if err := u.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "user"}
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
