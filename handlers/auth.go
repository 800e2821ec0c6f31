package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"bistro/apperrors"
	"bistro/config"
	"bistro/models"
	"bistro/utils"
)

func (api *API) Register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(w, apperrors.Validationf("username, email and password are required"))
		return
	}
	if len(req.Password) < 6 {
		utils.RespondError(w, apperrors.Validationf("password must be at least 6 characters"))
		return
	}

	taken, err := api.Users.UsernameTaken(r.Context(), req.Username)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if taken {
		utils.RespondError(w, apperrors.Validationf("username already taken"))
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	user, err := api.Users.Create(r.Context(), models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to create user")
		utils.RespondError(w, err)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	setRefreshCookie(w, refreshToken)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id":      user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"access_token": accessToken,
	})
}

func (api *API) Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, apperrors.Validationf("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondError(w, apperrors.Validationf("username and password required"))
		return
	}

	user, err := api.Users.GetByUsername(r.Context(), req.Username)
	if errors.Is(err, apperrors.ErrNotFound) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	setRefreshCookie(w, refreshToken)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":      user.ID,
		"username":     user.Username,
		"groups":       user.Groups,
		"access_token": accessToken,
	})
}

func (api *API) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		http.Error(w, "refresh token missing", http.StatusUnauthorized)
		return
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return config.SecretKey, nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	userID, err := parseUUID(claims.Subject)
	if err != nil {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	// Re-read the user so new tokens reflect current group membership.
	user, err := api.Users.GetByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	setRefreshCookie(w, refreshToken)
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"access_token": accessToken,
	})
}

func (api *API) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "successfully logged out",
	})
}

func setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
}
