/*
Package settings manages the singleton configuration document for the admin
panel.

The document is stored as one JSONB row and cached in Redis. Every field is
explicit: loading always starts from Defaults and unmarshals the stored
document on top, so callers never have to nil-check nested sections.
*/
package settings

import "time"

// Section names accepted by UpdateSection.
const (
	SectionGeneral       = "general"
	SectionNotifications = "notifications"
	SectionSecurity      = "security"
	SectionAppearance    = "appearance"
	SectionIntegrations  = "integrations"
	SectionBackup        = "backup"
)

// Sections lists all valid section names.
func Sections() []string {
	return []string{
		SectionGeneral, SectionNotifications, SectionSecurity,
		SectionAppearance, SectionIntegrations, SectionBackup,
	}
}

// Theme values.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Backup frequency values.
const (
	BackupDaily   = "daily"
	BackupWeekly  = "weekly"
	BackupMonthly = "monthly"
)

// General holds site identity settings.
type General struct {
	SiteName        string `json:"siteName"`
	SiteDescription string `json:"siteDescription"`
	SiteURL         string `json:"siteUrl"`
	AdminEmail      string `json:"adminEmail"`
	Timezone        string `json:"timezone"`
	Language        string `json:"language"`
}

// Notifications holds per-channel alert toggles.
type Notifications struct {
	EmailNotifications bool `json:"emailNotifications"`
	SMSNotifications   bool `json:"smsNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	InquiryAlerts      bool `json:"inquiryAlerts"`
	ProjectUpdates     bool `json:"projectUpdates"`
	SystemAlerts       bool `json:"systemAlerts"`
}

// PasswordPolicy holds password complexity requirements.
type PasswordPolicy struct {
	MinLength        int  `json:"minLength"`
	RequireUppercase bool `json:"requireUppercase"`
	RequireNumbers   bool `json:"requireNumbers"`
	RequireSymbols   bool `json:"requireSymbols"`
}

// Security holds authentication and access settings.
type Security struct {
	TwoFactorAuth  bool           `json:"twoFactorAuth"`
	SessionTimeout int            `json:"sessionTimeout"` // minutes
	PasswordPolicy PasswordPolicy `json:"passwordPolicy"`
	IPWhitelist    []string       `json:"ipWhitelist"`
}

// Appearance holds dashboard theming settings.
type Appearance struct {
	Theme        string `json:"theme"`
	PrimaryColor string `json:"primaryColor"`
	Logo         string `json:"logo"`
	Favicon      string `json:"favicon"`
}

// Integrations holds third-party service identifiers and keys.
type Integrations struct {
	GoogleAnalytics string `json:"googleAnalytics"`
	FacebookPixel   string `json:"facebookPixel"`
	MailchimpAPIKey string `json:"mailchimpApiKey"`
	SlackWebhook    string `json:"slackWebhook"`
}

// Backup holds automated backup scheduling settings.
type Backup struct {
	AutoBackup      bool   `json:"autoBackup"`
	BackupFrequency string `json:"backupFrequency"`
	BackupRetention int    `json:"backupRetention"` // days
	LastBackup      string `json:"lastBackup,omitempty"`
}

// Document is the complete settings document.
type Document struct {
	General       General       `json:"general"`
	Notifications Notifications `json:"notifications"`
	Security      Security      `json:"security"`
	Appearance    Appearance    `json:"appearance"`
	Integrations  Integrations  `json:"integrations"`
	Backup        Backup        `json:"backup"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Defaults returns a fully populated document. Loading merges the stored
// JSONB row on top of this, so missing keys fall back to these values.
func Defaults() Document {
	return Document{
		General: General{
			SiteName:        "Four Eyed Gems",
			SiteDescription: "Comprehensive admin panel for Four Eyed Gems management",
			SiteURL:         "https://admin.foureyedgems.com",
			AdminEmail:      "admin@foureyedgems.com",
			Timezone:        "UTC",
			Language:        "en",
		},
		Notifications: Notifications{
			EmailNotifications: true,
			SMSNotifications:   false,
			PushNotifications:  true,
			InquiryAlerts:      true,
			ProjectUpdates:     true,
			SystemAlerts:       true,
		},
		Security: Security{
			TwoFactorAuth:  false,
			SessionTimeout: 30,
			PasswordPolicy: PasswordPolicy{
				MinLength:        8,
				RequireUppercase: true,
				RequireNumbers:   true,
				RequireSymbols:   false,
			},
			IPWhitelist: []string{},
		},
		Appearance: Appearance{
			Theme:        ThemeSystem,
			PrimaryColor: "#4B49AC",
		},
		Integrations: Integrations{},
		Backup: Backup{
			AutoBackup:      true,
			BackupFrequency: BackupDaily,
			BackupRetention: 30,
		},
	}
}
