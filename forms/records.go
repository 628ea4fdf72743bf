package forms

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/services"
)

// ClientCreate adds a client by hand. The id is assigned by the system of
// record, so it is entered, not generated.
type ClientCreate struct {
	ID          *int   `json:"id"`
	ClientName  string `json:"client_name"`
	CountryID   *int   `json:"country_id"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Priority    *int   `json:"priority"`
}

func (ClientCreate) Kind() models.Kind { return models.KindClients }
func (ClientCreate) Mode() Mode        { return ModeCreate }
func (ClientCreate) authored() bool    { return false }

func (p ClientCreate) Validate() error {
	if err := requiredInt("id", "ID is required", p.ID); err != nil {
		return err
	}
	if err := required("client_name", "Client Name is required", p.ClientName); err != nil {
		return err
	}
	return requiredInt("country_id", "Country ID is required", p.CountryID)
}

func (p ClientCreate) request(int) (string, string, services.RequestOptions) {
	return http.MethodPost, "/api/clients/create", services.RequestOptions{JSON: models.ClientCreateRequest{
		ID:          *p.ID,
		ClientName:  trimmedOrNil(p.ClientName),
		CountryID:   *p.CountryID,
		Description: trimmedOrNil(p.Description),
		Thumbnail:   trimmedOrNil(p.Thumbnail),
		Priority:    intOr(p.Priority, 0),
	}}
}

// ClientEdit only touches the locally owned fields; identity and content
// belong to the sync source.
type ClientEdit struct {
	ID           int    `json:"id"`
	Priority     *int   `json:"priority"`
	Description1 string `json:"description1"`
}

func (ClientEdit) Kind() models.Kind { return models.KindClients }
func (ClientEdit) Mode() Mode        { return ModeEdit }
func (ClientEdit) authored() bool    { return false }

func (p ClientEdit) Validate() error {
	if err := validID(p.ID); err != nil {
		return err
	}
	return requiredInt("priority", "Priority is required", p.Priority)
}

func (p ClientEdit) request(int) (string, string, services.RequestOptions) {
	return http.MethodPut, itemPath("/api/clients/update", p.ID), services.RequestOptions{JSON: models.ClientUpdateRequest{
		Priority:     *p.Priority,
		Description1: strings.TrimSpace(p.Description1),
	}}
}

type ProjectCreate struct {
	ID           *int   `json:"id"`
	ClientID     *int   `json:"client_id"`
	ProjectName  string `json:"project_name"`
	Description  string `json:"description"`
	Description1 string `json:"description1"`
	Priority     *int   `json:"priority"`
}

func (ProjectCreate) Kind() models.Kind { return models.KindProjects }
func (ProjectCreate) Mode() Mode        { return ModeCreate }
func (ProjectCreate) authored() bool    { return false }

func (p ProjectCreate) Validate() error {
	if err := requiredInt("id", "ID is required", p.ID); err != nil {
		return err
	}
	if err := requiredInt("client_id", "Client is required", p.ClientID); err != nil {
		return err
	}
	return required("project_name", "Project Name is required", p.ProjectName)
}

func (p ProjectCreate) request(int) (string, string, services.RequestOptions) {
	return http.MethodPost, "/api/projects/create", services.RequestOptions{JSON: models.ProjectCreateRequest{
		ID:           *p.ID,
		ClientID:     *p.ClientID,
		ProjectName:  trimmedOrNil(p.ProjectName),
		Description:  trimmedOrNil(p.Description),
		Description1: trimmedOrNil(p.Description1),
		Priority:     intOr(p.Priority, 0),
	}}
}

type ProjectEdit struct {
	ID           int    `json:"id"`
	Description1 string `json:"description1"`
	Priority     *int   `json:"priority"`
}

func (ProjectEdit) Kind() models.Kind { return models.KindProjects }
func (ProjectEdit) Mode() Mode        { return ModeEdit }
func (ProjectEdit) authored() bool    { return false }

func (p ProjectEdit) Validate() error {
	if err := validID(p.ID); err != nil {
		return err
	}
	return requiredInt("priority", "Priority is required", p.Priority)
}

func (p ProjectEdit) request(int) (string, string, services.RequestOptions) {
	return http.MethodPut, itemPath("/api/projects/update", p.ID), services.RequestOptions{JSON: models.ProjectUpdateRequest{
		Description1: trimmedOrNil(p.Description1),
		Priority:     *p.Priority,
	}}
}

type TechnologyCreate struct {
	Name string `json:"name"`
}

func (TechnologyCreate) Kind() models.Kind { return models.KindTechnologies }
func (TechnologyCreate) Mode() Mode        { return ModeCreate }
func (TechnologyCreate) authored() bool    { return true }

func (p TechnologyCreate) Validate() error {
	return required("name", "Technology Name is required", p.Name)
}

func (p TechnologyCreate) request(userID int) (string, string, services.RequestOptions) {
	createdBy := userID
	return http.MethodPost, "/api/technologies", services.RequestOptions{JSON: models.TechnologyRequest{
		Name:      trimmedOrNil(p.Name),
		CreatedBy: &createdBy,
		UpdatedBy: userID,
	}}
}

type TechnologyEdit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (TechnologyEdit) Kind() models.Kind { return models.KindTechnologies }
func (TechnologyEdit) Mode() Mode        { return ModeEdit }
func (TechnologyEdit) authored() bool    { return true }

func (p TechnologyEdit) Validate() error {
	if err := validID(p.ID); err != nil {
		return err
	}
	return required("name", "Technology Name is required", p.Name)
}

func (p TechnologyEdit) request(userID int) (string, string, services.RequestOptions) {
	return http.MethodPut, itemPath("/api/technologies", p.ID), services.RequestOptions{JSON: models.TechnologyRequest{
		Name:      trimmedOrNil(p.Name),
		UpdatedBy: userID,
	}}
}
