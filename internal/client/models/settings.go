package models

type GeneralSettings struct {
	Language   string `json:"language"`
	Timezone   string `json:"timezone"`
	DateFormat string `json:"date_format"`
	Currency   string `json:"currency"`
}

type NotificationSettings struct {
	EmailNotifications bool `json:"email_notifications"`
	PushNotifications  bool `json:"push_notifications"`
	SMSNotifications   bool `json:"sms_notifications"`
	WeeklyReports      bool `json:"weekly_reports"`
	InventoryAlerts    bool `json:"inventory_alerts"`
	SalesAlerts        bool `json:"sales_alerts"`
	SystemUpdates      bool `json:"system_updates"`
}

type SecuritySettings struct {
	TwoFactorAuth  bool   `json:"two_factor_auth"`
	SessionTimeout string `json:"session_timeout"`
	PasswordExpiry string `json:"password_expiry"`
}

type DisplaySettings struct {
	Theme        string `json:"theme"`
	CompactView  bool   `json:"compact_view"`
	ShowSidebar  bool   `json:"show_sidebar"`
	ItemsPerPage string `json:"items_per_page"`
}

// Settings groups all per-user preference sections.
type Settings struct {
	General       GeneralSettings      `json:"general"`
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
	Display       DisplaySettings      `json:"display"`
}
