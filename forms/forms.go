package forms

import (
	"encoding/json"
	"net/http"
	"time"

	"evenza/db"
	"evenza/models"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var questionTypes = map[string]bool{
	"text":     true,
	"number":   true,
	"select":   true,
	"checkbox": true,
}

type questionPayload struct {
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
	Order    int      `json:"order"`
}

// ValidateQuestion checks a question payload; select questions need options.
func ValidateQuestion(p questionPayload) (string, bool) {
	if p.Label == "" {
		return "question label is required", false
	}
	if !questionTypes[p.Type] {
		return "unknown question type", false
	}
	if p.Type == "select" && len(p.Options) == 0 {
		return "select questions need at least one option", false
	}
	return "", true
}

func CreateQuestion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	var payload questionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid input data", http.StatusBadRequest)
		return
	}
	if msg, ok := ValidateQuestion(payload); !ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	question := models.FormQuestion{
		QuestionID: utils.GenerateID(12),
		EventID:    eventID,
		Label:      payload.Label,
		Type:       payload.Type,
		Required:   payload.Required,
		Options:    payload.Options,
		Order:      payload.Order,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := db.QuestionsCollection.InsertOne(r.Context(), question); err != nil {
		http.Error(w, "Failed to create question: "+err.Error(), http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, question)
}

func GetQuestions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	cursor, err := db.QuestionsCollection.Find(r.Context(), bson.M{"eventid": eventID})
	if err != nil {
		http.Error(w, "Failed to fetch questions", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var list []models.FormQuestion
	if err := cursor.All(r.Context(), &list); err != nil {
		http.Error(w, "Failed to decode questions", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.FormQuestion{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func DeleteQuestion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	questionID := ps.ByName("questionid")

	result, err := db.QuestionsCollection.DeleteOne(r.Context(),
		bson.M{"eventid": eventID, "questionid": questionID})
	if err != nil {
		http.Error(w, "Failed to delete question", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Question not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

func GetResponses(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	cursor, err := db.ResponsesCollection.Find(r.Context(), bson.M{"eventid": eventID})
	if err != nil {
		http.Error(w, "Failed to fetch responses", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var list []models.FormResponse
	if err := cursor.All(r.Context(), &list); err != nil {
		http.Error(w, "Failed to decode responses", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.FormResponse{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}
