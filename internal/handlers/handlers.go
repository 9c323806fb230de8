package handlers

import (
	"net/http"

	httputil "quizify/internal/utility/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// urlObjectID parses the named URL parameter as an ObjectID, writing a 400
// response when the format is invalid.
func urlObjectID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, name)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid "+name+" format", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}
