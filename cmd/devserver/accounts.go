package devserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-client/internal/domain"
	"github.com/go-petr/bank-client/pkg/web"
)

type accountURI struct {
	UserID    string `uri:"userID" binding:"required"`
	AccountID string `uri:"accountID" binding:"required"`
}

// listAccounts handles http request to list the user's accounts.
func (h handler) listAccounts(gctx *gin.Context) {
	accounts, err := h.store.ListAccounts(gctx.Param("userID"))
	if err != nil {
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	}

	gctx.JSON(http.StatusOK, accounts)
}

// getAccount handles http request to get a single account with its
// authoritative balance.
func (h handler) getAccount(gctx *gin.Context) {
	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	account, err := h.store.GetAccount(uri.UserID, uri.AccountID)
	if err != nil {
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	}

	gctx.JSON(http.StatusOK, account)
}

type updateBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

// updateBalance handles http request to overwrite an account balance.
func (h handler) updateBalance(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	var req updateBalanceRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	account, err := h.store.SetBalance(uri.UserID, uri.AccountID, req.Balance)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrNegativeBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
		}

		return
	}

	gctx.JSON(http.StatusOK, account)
}

type transferRequest struct {
	SourceAccountID      string          `json:"sourceAccountId" binding:"required"`
	DestinationAccountID string          `json:"destinationAccountId" binding:"required"`
	Amount               decimal.Decimal `json:"amount"`
}

type transferResponse struct {
	SourceAccountID      string `json:"sourceAccountId"`
	DestinationAccountID string `json:"destinationAccountId"`
	Status               string `json:"status"`
}

// transfer handles http request to move funds between two accounts of the
// same user.
func (h handler) transfer(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req transferRequest
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

	err := h.store.Transfer(gctx.Param("userID"), req.SourceAccountID, req.DestinationAccountID, req.Amount)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrInsufficientBalance, domain.ErrNegativeAmount, domain.ErrSameAccountTransfer:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
		}

		return
	}

	gctx.JSON(http.StatusOK, transferResponse{
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Status:               "COMPLETED",
	})
}
