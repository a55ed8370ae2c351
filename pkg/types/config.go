// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ImageRewrite replaces every occurrence of From with To in an exported
// image path. Rewrites apply in list order.
type ImageRewrite struct {
	From string `json:"from" yaml:"from" mapstructure:"from"`
	To   string `json:"to" yaml:"to" mapstructure:"to"`
}

// DefaultImageRewrites maps the WordPress media host to the Jekyll asset directory.
var DefaultImageRewrites = []ImageRewrite{
	{From: "https://example.com/images/", To: "/assets/images/"},
}

// LedgerConfig holds settings for the migration ledger.
type LedgerConfig struct {
	// Dir is the directory holding ledger.db and its exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// MigrationConfig holds settings for a migrate run.
type MigrationConfig struct {
	// Input is the path of the WordPress CSV export.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// OutputDir receives the generated posts. It is cleared before each run
	// unless KeepOutput is set.
	OutputDir string `json:"output" yaml:"output" mapstructure:"output"`

	// KeepOutput skips clearing OutputDir before the run.
	KeepOutput bool `json:"keep_output" yaml:"keep_output" mapstructure:"keep_output"`

	// Extension is the post file extension including the dot (default ".md").
	Extension string `json:"ext" yaml:"ext" mapstructure:"ext"`

	// Layout is the Jekyll layout written to each post (default "post").
	Layout string `json:"layout" yaml:"layout" mapstructure:"layout"`

	// CommentsWindowDays is the post age in days after which comments are
	// closed. Nil selects the default of 90; 0 closes comments on anything
	// older than today.
	CommentsWindowDays *int `json:"comments_window" yaml:"comments_window" mapstructure:"comments_window"`

	// ImageRewrites maps exported image URLs to site-relative paths.
	ImageRewrites []ImageRewrite `json:"image_rewrites" yaml:"image_rewrites" mapstructure:"image_rewrites"`
}
