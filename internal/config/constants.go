package config

import "time"

// Base application details
const AppName = "drift"
const ConfigDirName = "drift"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "drift.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const DefaultScrollOff = 3
