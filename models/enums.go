package models

type WebsiteType string

const (
	WebsiteTypeWebsite     WebsiteType = "WEBSITE"
	WebsiteTypeLandingPage WebsiteType = "LANDING_PAGE"
)

func (t WebsiteType) Valid() bool {
	return t == WebsiteTypeWebsite || t == WebsiteTypeLandingPage
}

type VideoFormat string

const (
	VideoFormatLandscape VideoFormat = "LANDSCAPE"
	VideoFormatPortrait  VideoFormat = "PORTRAIT"
	VideoFormatSquare    VideoFormat = "SQUARE"
)

func (f VideoFormat) Valid() bool {
	switch f {
	case VideoFormatLandscape, VideoFormatPortrait, VideoFormatSquare:
		return true
	}
	return false
}

type VideoType string

const (
	VideoTypeCorporate VideoType = "CORPORATE_VIDEO"
	VideoTypeAdFilm    VideoType = "AD_FILM"
	VideoTypeReel      VideoType = "REEL"
	VideoTypeAnimation VideoType = "ANIMATION"
	VideoTypeInterview VideoType = "INTERVIEW"
	VideoTypePortrait  VideoType = "PORTRAIT"
)

func (t VideoType) Valid() bool {
	switch t {
	case VideoTypeCorporate, VideoTypeAdFilm, VideoTypeReel,
		VideoTypeAnimation, VideoTypeInterview, VideoTypePortrait:
		return true
	}
	return false
}

type CreativeType string

const (
	CreativeTypeLogo     CreativeType = "LOGO"
	CreativeTypeBrochure CreativeType = "BROCHURE"
)

func (t CreativeType) Valid() bool {
	return t == CreativeTypeLogo || t == CreativeTypeBrochure
}

type UserRole string

const (
	RoleStandardUser UserRole = "STANDARD_USER"
	RoleHRAssistant  UserRole = "HR_ASSISTANT"
	RoleHRHead       UserRole = "HR_HEAD"
	RoleNoAccess     UserRole = "NO_ACCESS"
)

// UserRoles is the role filter option list.
var UserRoles = []UserRole{RoleStandardUser, RoleHRAssistant, RoleHRHead, RoleNoAccess}

func (r UserRole) Valid() bool {
	for _, role := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// TagEntityType is the parent collection a tag mapping belongs to.
type TagEntityType string

const (
	TagEntityWebsite TagEntityType = "WEBSITE"
	TagEntityVideo   TagEntityType = "VIDEO"
)

// PathSegment is the lower-case form used in /api/tag-mappings/{segment}/{id}.
func (t TagEntityType) PathSegment() string {
	switch t {
	case TagEntityWebsite:
		return "website"
	case TagEntityVideo:
		return "video"
	}
	return ""
}

// ForeignKey is the payload key naming the parent record.
func (t TagEntityType) ForeignKey() string {
	switch t {
	case TagEntityWebsite:
		return "website_id"
	case TagEntityVideo:
		return "video_id"
	}
	return ""
}

func (t TagEntityType) Valid() bool {
	return t == TagEntityWebsite || t == TagEntityVideo
}
