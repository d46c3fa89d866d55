package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/internal/auth"
	"github.com/arloliu/galacticbuf/internal/orders"
)

const userKey = "galacticbuf.user"

func (s *Server) handleHealth(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) handleRegister(c *gin.Context) {
	msg, ok := s.readMessage(c)
	if !ok {
		return
	}

	creds, err := auth.RequestFromObject(msg)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "", err)
		return
	}

	err = s.users.Register(creds.Username, creds.Password)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, errs.ErrUserExists):
		s.reject(c, http.StatusConflict, "", err)
	case errors.Is(err, errs.ErrMissingField):
		s.reject(c, http.StatusBadRequest, "", err)
	default:
		s.reject(c, http.StatusInternalServerError, "", err)
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	msg, ok := s.readMessage(c)
	if !ok {
		return
	}

	creds, err := auth.RequestFromObject(msg)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "", err)
		return
	}

	if err := s.users.Verify(creds.Username, creds.Password); err != nil {
		s.reject(c, http.StatusUnauthorized, "", err)
		return
	}

	s.logger.Debug().Str("user", creds.Username).Msg("login")
	s.writeMessage(c, http.StatusOK, auth.TokenObject(s.issuer.Issue(creds.Username)))
}

func (s *Server) handleListOrders(c *gin.Context) {
	start, err := strconv.ParseInt(c.Query("delivery_start"), 10, 64)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "", err)
		return
	}
	end, err := strconv.ParseInt(c.Query("delivery_end"), 10, 64)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "", err)
		return
	}

	s.writeCached(c, orders.ListMessage(s.book.ByWindow(start, end)))
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	msg, ok := s.readMessage(c)
	if !ok {
		return
	}

	order, err := orders.FromObject(msg)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "", err)
		return
	}

	if err := s.book.Add(order); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errs.ErrOrderExists) {
			status = http.StatusConflict
		}
		s.reject(c, status, "", err)

		return
	}

	s.logger.Info().
		Str("user", c.GetString(userKey)).
		Str("order_id", order.ID).
		Int64("price", order.Price).
		Msg("order added")
	s.writeMessage(c, http.StatusCreated, orders.ToObject(order))
}

func (s *Server) handleDeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := s.book.Remove(id); err != nil {
		s.reject(c, http.StatusNotFound, "", err)
		return
	}

	s.logger.Info().Str("user", c.GetString(userKey)).Str("order_id", id).Msg("order removed")
	c.Status(http.StatusNoContent)
}

// requireBearer validates "Authorization: Bearer <token>" and stores the
// username on the context.
func (s *Server) requireBearer(c *gin.Context) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		s.reject(c, http.StatusUnauthorized, "", errs.ErrInvalidToken)
		return
	}

	user, err := s.tokens.Validate(strings.TrimSpace(token))
	if err != nil {
		s.reject(c, http.StatusUnauthorized, "", err)
		return
	}

	c.Set(userKey, user)
	c.Next()
}
