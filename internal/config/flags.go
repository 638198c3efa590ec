package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag names shared by RegisterFlags and ApplyFlags
const (
	FlagMultiple    = "multiple"
	FlagURL         = "url"
	FlagName        = "name"
	FlagPlaceholder = "placeholder"
	FlagRequired    = "required"
	FlagNoClear     = "no-clear"
	FlagNoSearch    = "no-search"
	FlagMinLength   = "min-length"
	FlagDebounce    = "debounce"
	FlagSearchParam = "search-param"
	FlagHeight      = "height"
	FlagLogFile     = "log-file"
	FlagVerbose     = "verbose"
	FlagOutput      = "output"
)

// RegisterFlags adds the config override flags to fs, with defaults taken from
// DefaultConfig so that --help shows them
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.BoolP(FlagMultiple, "m", false, "allow selecting several values")
	fs.String(FlagURL, "", "search URL; when set, filtering happens remotely")
	fs.String(FlagName, "", "form field name used by --output form")
	fs.String(FlagPlaceholder, "", "placeholder shown when nothing is selected")
	fs.Bool(FlagRequired, false, "fail when nothing is selected")
	fs.Bool(FlagNoClear, false, "do not allow removing selected values")
	fs.Bool(FlagNoSearch, false, "disable typing to filter")
	fs.Int(FlagMinLength, d.Widget.MinRemoteSearchLength, "minimum term length for remote search")
	fs.Duration(FlagDebounce, d.Widget.Debounce(), "delay before a remote search is sent")
	fs.String(FlagSearchParam, d.Widget.SearchParam, "query parameter carrying the search term")
	fs.Int(FlagHeight, d.UISettings.Height, "number of option rows shown")
	fs.String(FlagLogFile, d.UISettings.LogFile, "log file path")
	fs.CountP(FlagVerbose, "v", "increase log verbosity")
	fs.StringP(FlagOutput, "o", d.UISettings.Output, "output format: json, form or lines")
}

// ApplyFlags overrides cfg with every flag the user set explicitly
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err != nil || !fs.Changed(name) {
			return
		}
		err = apply()
	}

	set(FlagMultiple, func() error {
		multi, e := fs.GetBool(FlagMultiple)
		if multi {
			c.Widget.Mode = "multi"
		} else {
			c.Widget.Mode = "single"
		}
		return e
	})
	set(FlagURL, func() (e error) { c.Widget.URL, e = fs.GetString(FlagURL); return })
	set(FlagName, func() (e error) { c.Widget.Name, e = fs.GetString(FlagName); return })
	set(FlagPlaceholder, func() (e error) { c.Widget.Placeholder, e = fs.GetString(FlagPlaceholder); return })
	set(FlagRequired, func() (e error) { c.Widget.Required, e = fs.GetBool(FlagRequired); return })
	set(FlagNoClear, func() error {
		noClear, e := fs.GetBool(FlagNoClear)
		c.Widget.AllowClear = !noClear
		return e
	})
	set(FlagNoSearch, func() (e error) { c.Widget.NoSearch, e = fs.GetBool(FlagNoSearch); return })
	set(FlagMinLength, func() (e error) { c.Widget.MinRemoteSearchLength, e = fs.GetInt(FlagMinLength); return })
	set(FlagDebounce, func() error {
		d, e := fs.GetDuration(FlagDebounce)
		c.Widget.DebounceMillis = int(d / time.Millisecond)
		return e
	})
	set(FlagSearchParam, func() (e error) { c.Widget.SearchParam, e = fs.GetString(FlagSearchParam); return })
	set(FlagHeight, func() (e error) { c.UISettings.Height, e = fs.GetInt(FlagHeight); return })
	set(FlagLogFile, func() (e error) { c.UISettings.LogFile, e = fs.GetString(FlagLogFile); return })
	set(FlagVerbose, func() (e error) { c.UISettings.LogLevel, e = fs.GetCount(FlagVerbose); return })
	set(FlagOutput, func() (e error) { c.UISettings.Output, e = fs.GetString(FlagOutput); return })
	return err
}
