package configuration

import "github.com/adampresley/configinator"

type Config struct {
	FavouritesGroupID   string `flag:"favgroup" env:"FAVOURITES_GROUP_ID" default:"876d949f-6532-44af-924c-f164e5ac6b1b" description:"Pinata group holding the favourites carousel images"`
	Host                string `flag:"host" env:"HOST" default:"localhost:3000" description:"The address and port to bind the HTTP server to"`
	LogLevel            string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxThumbnailWorkers int    `flag:"mtw" env:"MAX_THUMBNAIL_WORKERS" default:"5" description:"Maximum number of concurrent per-group thumbnail lookups"`
	MaxUploadAttempts   int    `flag:"mua" env:"MAX_UPLOAD_ATTEMPTS" default:"3" description:"Maximum number of attempts for a single photo upload"`
	MaxUploadSizeMB     int    `flag:"musm" env:"MAX_UPLOAD_SIZE_MB" default:"50" description:"Maximum accepted size of an upload request body in megabytes"`
	PinataAPIURL        string `flag:"pinataapi" env:"PINATA_API_URL" default:"https://api.pinata.cloud" description:"Base URL of the Pinata API"`
	PinataJWT           string `flag:"pinatajwt" env:"PINATA_JWT" default:"" description:"JWT used to authenticate against Pinata"`
	PinataUploadURL     string `flag:"pinataupload" env:"PINATA_UPLOAD_URL" default:"https://uploads.pinata.cloud" description:"Base URL of the Pinata upload service"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
