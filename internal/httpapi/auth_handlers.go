package httpapi

import (
	"net/http"

	"bizdash-be/internal/transport"
	"bizdash-be/internal/user"
	"bizdash-be/internal/utils"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, r, user.ErrMissingFields)
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	transport.SetSession(w, token, u.Name, h.sessionTTL, h.secureCookies)
	utils.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handlers) Signout(w http.ResponseWriter, r *http.Request) {
	transport.ClearSession(w)
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Session describes the signed-in user behind a dashboard page.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, userResponse{
		ID:    id,
		Name:  utils.GetUserNameFromContext(r.Context()),
		Email: utils.GetUserEmailFromContext(r.Context()),
	})
}
