package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Upstream struct {
		Geocoder struct {
			BaseURL       string        `mapstructure:"baseURL"`
			Timeout       time.Duration `mapstructure:"timeout"`
			MaxCandidates int           `mapstructure:"maxCandidates"`
			CacheTTL      time.Duration `mapstructure:"cacheTTL"`
		} `mapstructure:"geocoder"`
		Overpass struct {
			Mirrors       []string      `mapstructure:"mirrors"`
			Timeout       time.Duration `mapstructure:"timeout"`
			MaxRetries    int           `mapstructure:"maxRetries"`
			RetryBaseWait time.Duration `mapstructure:"retryBaseWait"`
			CacheTTL      time.Duration `mapstructure:"cacheTTL"`
		} `mapstructure:"overpass"`
		HotelInventory struct {
			BaseURL string        `mapstructure:"baseURL"`
			Enabled bool          `mapstructure:"enabled"`
			Timeout time.Duration `mapstructure:"timeout"`
		} `mapstructure:"hotelInventory"`
	} `mapstructure:"upstream"`
	// Itinerary holds the empirically-chosen heuristic constants. They live in
	// configuration rather than code so they can be tuned against real
	// travel-time ground truth without a rebuild.
	Itinerary struct {
		PerDayCapDense      int           `mapstructure:"perDayCapDense"`
		PerDayCapMedium     int           `mapstructure:"perDayCapMedium"`
		PerDayCapSparse     int           `mapstructure:"perDayCapSparse"`
		DenseRadiusKm       float64       `mapstructure:"denseRadiusKm"`
		MediumRadiusKm      float64       `mapstructure:"mediumRadiusKm"`
		MinSelection        int           `mapstructure:"minSelection"`
		ClusterMaxRounds    int           `mapstructure:"clusterMaxRounds"`
		DensitySpeedFloor   float64       `mapstructure:"densitySpeedFloor"`
		DensitySpeedBase    float64       `mapstructure:"densitySpeedBase"`
		DensitySpeedSlope   float64       `mapstructure:"densitySpeedSlope"`
		ShortLegKm          float64       `mapstructure:"shortLegKm"`
		ShortLegOverhead    float64       `mapstructure:"shortLegOverhead"`
		LongTransitLegKm    float64       `mapstructure:"longTransitLegKm"`
		LongTransitExtraMin float64       `mapstructure:"longTransitExtraMin"`
		DwellMinutesPerPOI  float64       `mapstructure:"dwellMinutesPerPOI"`
		BundleCacheTTL      time.Duration `mapstructure:"bundleCacheTTL"`
	} `mapstructure:"itinerary"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
