// Package cli builds the rimlocale root command. Flags are bound to viper
// keys so every option can also come from the config file, a .env file or a
// RIMLOCALE_* environment variable.
package cli
