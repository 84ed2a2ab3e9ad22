package utils

const (
	// ApplicationName is the command name used in help and version output.
	ApplicationName = "gaspy"
	// ConfigFileName is the name of local and global configuration files.
	ConfigFileName = "config.yaml"
	// ConfigFileType is the viper format of configuration files.
	ConfigFileType = "yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding global configuration.
	GlobalConfigDirectoryName = ".gaspy"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes a fatal application error.
	ApplicationExecutionFailedMessage = "application execution failed"
)
