// Package refdata serves the static marketing reference lists: experts,
// labs, and events. The data is an in-process constant, not a table.
package refdata

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Expert is one profiled researcher.
type Expert struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Focus string `json:"focus"`
	Photo string `json:"photo,omitempty"`
}

// Lab is one research group.
type Lab struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Areas       []string `json:"areas"`
}

// Event is one public program entry.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

var experts = []Expert{
	{ID: "e1", Name: "Dr. Lena Okafor", Title: "Director of Computational Science", Focus: "Large-scale climate simulation"},
	{ID: "e2", Name: "Prof. Marcus Hale", Title: "Senior Fellow, Policy Lab", Focus: "Technology governance"},
	{ID: "e3", Name: "Dr. Priya Raman", Title: "Principal Investigator", Focus: "Human-computer interaction"},
}

var labs = []Lab{
	{ID: "l1", Name: "Computational Science Lab", Description: "Simulation and modeling infrastructure for the institute's research programs.", Areas: []string{"HPC", "Climate", "Numerical methods"}},
	{ID: "l2", Name: "Policy Lab", Description: "Interdisciplinary research on technology and public policy.", Areas: []string{"Governance", "Ethics"}},
	{ID: "l3", Name: "Interaction Lab", Description: "Studies of how people work with intelligent systems.", Areas: []string{"HCI", "Accessibility"}},
}

var events = []Event{
	{ID: "ev1", Title: "Annual Research Symposium", Date: "2026-10-12", Location: "Main Auditorium", Description: "A full day of talks from every lab."},
	{ID: "ev2", Title: "Open Lab Night", Date: "2026-11-05", Location: "Institute Campus", Description: "Public demos and tours."},
}

// ListExperts returns the expert roster.
// @Summary List institute experts
// @Tags Reference
// @Produce json
// @Success 200 {array} refdata.Expert
// @Router /experts [get]
func ListExperts(c *gin.Context) {
	c.JSON(http.StatusOK, experts)
}

// ListLabs returns the lab directory.
// @Summary List institute labs
// @Tags Reference
// @Produce json
// @Success 200 {array} refdata.Lab
// @Router /labs [get]
func ListLabs(c *gin.Context) {
	c.JSON(http.StatusOK, labs)
}

// ListEvents returns upcoming events.
// @Summary List institute events
// @Tags Reference
// @Produce json
// @Success 200 {array} refdata.Event
// @Router /events [get]
func ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, events)
}
