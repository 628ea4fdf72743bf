package models

import (
	"fmt"
	"strings"
)

// Kind names an entity collection managed by the dashboard.
type Kind string

const (
	KindClients      Kind = "clients"
	KindProjects     Kind = "projects"
	KindUsers        Kind = "users"
	KindTechnologies Kind = "technologies"
	KindWebsites     Kind = "websites"
	KindVideos       Kind = "videos"
	KindCreatives    Kind = "creatives"
)

// KindInfo holds the per-collection wire conventions of the backend.
type KindInfo struct {
	Kind        Kind
	Singular    string // lower case, used in messages ("client")
	Title       string // capitalised singular ("Client")
	ListPath    string
	BasePath    string // create/update/delete root
	EnvelopeKey string // key under data.* holding the records
	PageSize    int
	FilterParam string // secondary filter query parameter, empty when none
	Syncable    bool
	Deletable   bool
}

var kinds = map[Kind]KindInfo{
	KindClients: {
		Kind: KindClients, Singular: "client", Title: "Client",
		ListPath: "/api/clients/list", BasePath: "/api/clients", EnvelopeKey: "clients",
		PageSize: 100, FilterParam: "country_id", Syncable: true,
	},
	KindProjects: {
		Kind: KindProjects, Singular: "project", Title: "Project",
		ListPath: "/api/projects/list", BasePath: "/api/projects", EnvelopeKey: "projects",
		PageSize: 100, FilterParam: "client_id", Syncable: true,
	},
	KindUsers: {
		Kind: KindUsers, Singular: "user", Title: "User",
		ListPath: "/api/users/list", BasePath: "/api/users", EnvelopeKey: "users",
		PageSize: 100, FilterParam: "role", Syncable: true,
	},
	KindTechnologies: {
		Kind: KindTechnologies, Singular: "technology", Title: "Technology",
		ListPath: "/api/technologies", BasePath: "/api/technologies", EnvelopeKey: "technologies",
		PageSize: 10, Deletable: true,
	},
	KindWebsites: {
		Kind: KindWebsites, Singular: "website", Title: "Website",
		ListPath: "/api/websites/list", BasePath: "/api/websites", EnvelopeKey: "websites",
		PageSize: 10, Deletable: true,
	},
	KindVideos: {
		Kind: KindVideos, Singular: "video", Title: "Video",
		ListPath: "/api/videos/list", BasePath: "/api/videos", EnvelopeKey: "videos",
		PageSize: 10, Deletable: true,
	},
	KindCreatives: {
		Kind: KindCreatives, Singular: "creative", Title: "Creative",
		ListPath: "/api/creatives/list", BasePath: "/api/creatives", EnvelopeKey: "creatives",
		PageSize: 10, Deletable: true,
	},
}

// AllKinds lists the collections in dashboard menu order.
func AllKinds() []Kind {
	return []Kind{
		KindClients, KindProjects, KindTechnologies, KindWebsites,
		KindVideos, KindCreatives, KindUsers,
	}
}

// ParseKind accepts a collection name in any letter case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kinds[k]; !ok {
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
	return k, nil
}

// Info returns the collection conventions. Unknown kinds yield the zero value.
func (k Kind) Info() KindInfo {
	return kinds[k]
}

func (k Kind) String() string {
	return string(k)
}

// FetchErrorMessage is the static text shown when a list fetch fails.
func (k Kind) FetchErrorMessage() string {
	return fmt.Sprintf("Failed to load %s. Please try again.", k)
}

// PluralTitle is the capitalised collection name ("Clients").
func (k Kind) PluralTitle() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
