package devserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-client/internal/domain"
	"github.com/go-petr/bank-client/pkg/errorspkg"
	"github.com/go-petr/bank-client/pkg/passpkg"
	"github.com/go-petr/bank-client/pkg/web"
)

type createUserRequest struct {
	FirstName       string          `json:"firstName" binding:"required,alpha,min=2"`
	LastName        string          `json:"lastName" binding:"required,alpha,min=2"`
	Email           string          `json:"email" binding:"required,email"`
	Password        string          `json:"password" binding:"required,min=8"`
	PIN             string          `json:"pin" binding:"required,len=4,numeric"`
	AccountType     string          `json:"accountType" binding:"required,oneof=checking savings both"`
	CheckingBalance decimal.Decimal `json:"checkingBalance"`
	SavingsBalance  decimal.Decimal `json:"savingsBalance"`
}

// createUser handles http request to create a user with their opening accounts.
func (h handler) createUser(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req createUserRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.JSONError{Error: web.ValidationMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if req.CheckingBalance.IsNegative() || req.SavingsBalance.IsNegative() {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrNegativeBalance))
		return
	}

	hashedPassword, err := passpkg.Hash(req.Password)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	hashedPIN, err := passpkg.Hash(req.PIN)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	user := domain.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		HashedPIN:      hashedPIN,
	}

	var opening []domain.Account

	if req.AccountType == "checking" || req.AccountType == "both" {
		opening = append(opening, domain.Account{
			AccountType: domain.Checking,
			Balance:     req.CheckingBalance,
		})
	}

	if req.AccountType == "savings" || req.AccountType == "both" {
		opening = append(opening, domain.Account{
			AccountType: domain.Savings,
			Balance:     req.SavingsBalance,
		})
	}

	createdUser, err := h.store.CreateUser(user, opening)
	if err != nil {
		if err == domain.ErrEmailAlreadyExists {
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, createdUser)
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
	PIN   string `json:"pin" binding:"required,len=4,numeric"`
}

type loginResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
}

// login checks the email and PIN pair. Bad credentials answer 200 with
// authenticated=false; the client branches on the flag, not the status.
func (h handler) login(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.JSONError{Error: web.ValidationMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		gctx.JSON(http.StatusOK, loginResponse{Authenticated: false})
		return
	}

	if err := passpkg.Check(req.PIN, user.HashedPIN); err != nil {
		l.Warn().Err(err).Str("email", req.Email).Msg("failed PIN check")
		gctx.JSON(http.StatusOK, loginResponse{Authenticated: false})

		return
	}

	gctx.JSON(http.StatusOK, loginResponse{Authenticated: true, UserID: user.UserID})
}
