package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doctrans/dtrs/internal/auth"
	"github.com/doctrans/dtrs/model"
)

func handleRegister(c *Context, w http.ResponseWriter, r *http.Request) {
	register, err := model.NewRegisterRequestFromReader(r.Body)
	if err != nil {
		c.Logger.WithError(err).Debug("failed to unmarshal register request")
		writeApiError(c, w, model.NewValidationError("failed to decode register request", nil))
		return
	}
	if issues := register.Validate(); issues != nil {
		writeApiError(c, w, model.NewValidationError("registration failed validation", issues))
		return
	}

	existing, err := c.Store.GetUserByEmail(register.Email)
	if err != nil {
		c.Logger.WithError(err).Error("failed to check for existing user")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeApiError(c, w, model.NewValidationError("registration failed validation",
			map[string]string{"email": "an account with this email already exists"}))
		return
	}

	user := model.NewUser(register.Email, register.Name)
	user.PasswordHash, err = auth.HashPassword(register.Password)
	if err != nil {
		c.Logger.WithError(err).Error("failed to hash password")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = c.Store.CreateUser(user)
	if err != nil {
		c.Logger.WithError(err).Error("failed to store user")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	outputJSON(c, w, user)

	c.Logger.Debugf("Registered user %s", user.ID)
}

func handleLogin(c *Context, w http.ResponseWriter, r *http.Request) {
	login, err := model.NewLoginRequestFromReader(r.Body)
	if err != nil {
		c.Logger.WithError(err).Debug("failed to unmarshal login request")
		writeApiError(c, w, model.NewValidationError("failed to decode login request", nil))
		return
	}

	user, err := c.Store.GetUserByEmail(login.Email)
	if err != nil {
		c.Logger.WithError(err).Error("failed to fetch user for login")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, login.Password) {
		writeApiError(c, w, model.NewApiError(model.ErrorUnauthenticated, "invalid email or password"))
		return
	}

	token, err := c.Auth.IssueToken(user)
	if err != nil {
		c.Logger.WithError(err).Error("failed to issue session token")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, &model.LoginResponse{Token: token, User: user})
}

func handleGetProfile(c *Context, w http.ResponseWriter, r *http.Request) {
	user, err := c.Store.GetUser(c.Session.UserID)
	if err != nil {
		c.Logger.WithError(err).Error("failed to fetch profile")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeApiError(c, w, model.NewApiError(model.ErrorNotFound, "no such user"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, user)
}

func handleUpdateProfile(c *Context, w http.ResponseWriter, r *http.Request) {
	update, err := model.NewUpdateProfileRequestFromReader(r.Body)
	if err != nil {
		c.Logger.WithError(err).Debug("failed to unmarshal profile update")
		writeApiError(c, w, model.NewValidationError("failed to decode profile update", nil))
		return
	}

	user, err := c.Store.GetUser(c.Session.UserID)
	if err != nil {
		c.Logger.WithError(err).Error("failed to fetch profile")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeApiError(c, w, model.NewApiError(model.ErrorNotFound, "no such user"))
		return
	}

	user.Name = update.Name
	user.UpdateAt = model.GetMillis()

	err = c.Store.UpdateUser(user)
	if err != nil {
		c.Logger.WithError(err).Error("failed to update profile")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, user)
}

func handleGetUsers(c *Context, w http.ResponseWriter, r *http.Request) {
	users, err := c.Store.GetUsers()
	if err != nil {
		c.Logger.WithError(err).Error("failed to fetch users")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, users)
}

func handleGetUser(c *Context, w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, err := c.Store.GetUser(vars["id"])
	if err != nil {
		c.Logger.WithError(err).Error("failed to fetch user")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeApiError(c, w, model.NewApiError(model.ErrorNotFound, "no such user"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, user)
}

func handleUpdateUser(c *Context, w http.ResponseWriter, r *http.Request) {
	update, err := model.NewUpdateUserRequestFromReader(r.Body)
	if err != nil {
		c.Logger.WithError(err).Debug("failed to unmarshal user update")
		writeApiError(c, w, model.NewValidationError("failed to decode user update", nil))
		return
	}

	vars := mux.Vars(r)
	user, err := c.Store.GetUser(vars["id"])
	if err != nil {
		c.Logger.WithError(err).Error("failed to fetch user")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeApiError(c, w, model.NewApiError(model.ErrorNotFound, "no such user"))
		return
	}

	user.Name = update.Name
	user.Admin = update.Admin
	user.UpdateAt = model.GetMillis()

	err = c.Store.UpdateUser(user)
	if err != nil {
		c.Logger.WithError(err).Error("failed to update user")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, user)
}
