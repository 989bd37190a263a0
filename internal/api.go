package daycounter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce plain
// @Success 200 {string} string "Healthy"
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}

// @Summary Get the counter
// @Description Returns the title, date label, day count and picker state
// @Tags counter
// @Produce json
// @Success 200 {object} View
// @Failure 405 {string} string "Method not allowed"
// @Router /counter [get]
func (s *Server) CounterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeView(w, s.State.View())
}

// @Summary Select the start date
// @Description Persists the start date and recomputes the day count. Any date is accepted, past or future.
// @Tags counter
// @Accept x-www-form-urlencoded
// @Produce json
// @Param date formData string true "Start date, 2006-01-02 or RFC 3339"
// @Success 200 {object} View
// @Failure 400 {string} string "Bad request"
// @Failure 405 {string} string "Method not allowed"
// @Router /counter/date [post]
func (s *Server) SelectDateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	date, err := ParseStartDate(r.FormValue("date"), s.State.location)
	if err != nil {
		http.Error(w, "Failed to parse date", http.StatusBadRequest)
		return
	}
	log.Info("Select date", "date", r.FormValue("date"))
	writeView(w, s.State.SelectDate(r.Context(), date))
}

// @Summary Reset the counter
// @Description Removes the stored start date and sets the day count to 0
// @Tags counter
// @Produce json
// @Success 200 {object} View
// @Failure 405 {string} string "Method not allowed"
// @Router /counter/reset [post]
func (s *Server) ResetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeView(w, s.State.Reset(r.Context()))
}

// @Summary Open the date picker
// @Tags picker
// @Produce json
// @Success 200 {object} View
// @Failure 405 {string} string "Method not allowed"
// @Router /picker/open [post]
func (s *Server) PickerOpenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeView(w, s.State.OpenPicker())
}

// @Summary Report a picker change
// @Description Without a date the picker was cancelled and the current start date, if any, is kept. The picker closes or stays open according to the dismiss policy.
// @Tags picker
// @Accept x-www-form-urlencoded
// @Produce json
// @Param date formData string false "Selected date, 2006-01-02 or RFC 3339"
// @Success 200 {object} View
// @Failure 400 {string} string "Bad request"
// @Failure 405 {string} string "Method not allowed"
// @Router /picker/change [post]
func (s *Server) PickerChangeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	var selected *time.Time
	if raw := r.FormValue("date"); raw != "" {
		date, err := ParseStartDate(raw, s.State.location)
		if err != nil {
			http.Error(w, "Failed to parse date", http.StatusBadRequest)
			return
		}
		selected = &date
	}
	writeView(w, s.State.PickerChanged(r.Context(), selected))
}

// @Summary Dismiss the date picker
// @Tags picker
// @Produce json
// @Success 200 {object} View
// @Failure 405 {string} string "Method not allowed"
// @Router /picker/dismiss [post]
func (s *Server) PickerDismissHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeView(w, s.State.DismissPicker())
}

func writeView(w http.ResponseWriter, view View) {
	jsonMessage, err := json.Marshal(view)
	if err != nil {
		log.Error("Error marshaling counter view", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(jsonMessage)
}
