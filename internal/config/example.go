package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todoboard configuration file
# Values can be overridden by TODOBOARD_* environment variables or CLI flags

# Data file (relative to the current directory, supports ~ expansion)
data_file = ".todoboard/todos.json"

# Categories offered for new tasks and reported by stats
categories = ["General", "Work", "Personal", "Shopping", "Health", "Learning"]

# Logging: level is debug, info, warn or error; format is text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

# Quick-add templates replace the built-in set when any are given
# [[templates]]
# name = "standup"
# title = "Daily standup"
# category = "Work"
# priority = "Medium"
`
}
