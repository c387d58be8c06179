package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the REST surface. Numeric id constraints keep the
// weekly-schedule routes out of the {id} captures.
func NewRouter(maint *MaintenanceHandler, bikes *BikeHandler, parts *PartHandler, purchases *PurchaseHandler, users *UserHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, Logging)

	r.HandleFunc("/maintenance/weekly-schedule", maint.GetWeeklySchedule).Methods(http.MethodGet)
	r.HandleFunc("/maintenance/weekly-schedule", maint.PutWeeklySchedule).Methods(http.MethodPut)
	r.HandleFunc("/maintenance/generate-weekly", maint.GenerateWeekly).Methods(http.MethodPost)

	r.HandleFunc("/maintenance", maint.List).Methods(http.MethodGet)
	r.HandleFunc("/maintenance", maint.Create).Methods(http.MethodPost)
	r.HandleFunc("/maintenance/{id:[0-9]+}", maint.Get).Methods(http.MethodGet)
	r.HandleFunc("/maintenance/{id:[0-9]+}", maint.Patch).Methods(http.MethodPatch)
	r.HandleFunc("/maintenance/{id:[0-9]+}", maint.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/maintenance/{id:[0-9]+}/parts", maint.ListParts).Methods(http.MethodGet)
	r.HandleFunc("/maintenance/{id:[0-9]+}/parts", maint.AddParts).Methods(http.MethodPost)
	r.HandleFunc("/maintenance/{eventId:[0-9]+}/parts/{partId:[0-9]+}", maint.UpdatePart).Methods(http.MethodPut)
	r.HandleFunc("/maintenance/{eventId:[0-9]+}/parts/{partId:[0-9]+}", maint.DeletePart).Methods(http.MethodDelete)

	r.HandleFunc("/bikes", bikes.List).Methods(http.MethodGet)
	r.HandleFunc("/bikes", bikes.Create).Methods(http.MethodPost)
	r.HandleFunc("/bikes/{id:[0-9]+}", bikes.Get).Methods(http.MethodGet)
	r.HandleFunc("/bikes/{id:[0-9]+}", bikes.Patch).Methods(http.MethodPatch)
	r.HandleFunc("/bikes/{id:[0-9]+}", bikes.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/parts", parts.List).Methods(http.MethodGet)
	r.HandleFunc("/parts", parts.Create).Methods(http.MethodPost)
	r.HandleFunc("/parts/{id:[0-9]+}", parts.Get).Methods(http.MethodGet)
	r.HandleFunc("/parts/{id:[0-9]+}", parts.Patch).Methods(http.MethodPatch)
	r.HandleFunc("/parts/{id:[0-9]+}", parts.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/purchase-requests", purchases.List).Methods(http.MethodGet)
	r.HandleFunc("/purchase-requests", purchases.Create).Methods(http.MethodPost)
	r.HandleFunc("/purchase-requests/{id:[0-9]+}", purchases.Get).Methods(http.MethodGet)
	r.HandleFunc("/purchase-requests/{id:[0-9]+}", purchases.Patch).Methods(http.MethodPatch)
	r.HandleFunc("/purchase-requests/{id:[0-9]+}", purchases.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/users", users.List).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}", users.Get).Methods(http.MethodGet)

	return r
}
