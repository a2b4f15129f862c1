package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                  = "debug"
	ConfigLastRoundHalved        = "last-round-halved"
	ConfigTableBuckets           = "table-buckets"
	ConfigTableMemoryFraction    = "table-memory-fraction"
	ConfigMinDepth               = "min-depth"
	ConfigMaxDepth               = "max-depth"
	ConfigOpening                = "opening"
	ConfigAutoplayGames          = "autoplay-games"
	ConfigAutoplayThreads        = "autoplay-threads"
	ConfigAutoplayDepth          = "autoplay-depth"
	ConfigAutoplayRandomOpenings = "autoplay-random-openings"
	ConfigAutoplayTableBuckets   = "autoplay-table-buckets"
	ConfigAutoplayLogfile        = "autoplay-logfile"
	ConfigHistoryFile            = "history-file"
)

type Config struct {
	*viper.Viper

	args []string
}

func New() *Config {
	c := &Config{Viper: viper.New()}
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigLastRoundHalved, false)
	c.SetDefault(ConfigTableBuckets, 1<<24)
	c.SetDefault(ConfigTableMemoryFraction, 0.25)
	c.SetDefault(ConfigMinDepth, 0)
	c.SetDefault(ConfigMaxDepth, 6)
	c.SetDefault(ConfigOpening, []int{4, 1, 3, 0, 2, 7, 4, 1, 3, 0, 2, 7})
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigAutoplayThreads, runtime.NumCPU())
	c.SetDefault(ConfigAutoplayDepth, 2)
	c.SetDefault(ConfigAutoplayRandomOpenings, 2)
	c.SetDefault(ConfigAutoplayTableBuckets, 1<<16)
	c.SetDefault(ConfigAutoplayLogfile, "/tmp/autoplay.txt")
	c.SetDefault(ConfigHistoryFile, "/tmp/tumbledrop_readline.tmp")

	c.SetEnvPrefix("tumbledrop")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return c
}

// Load reads the optional config file and then the command-line flags.
// Flags beat environment variables, which beat the file. Parsing stops at
// the first argument that is not a flag; the rest are kept in Args.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("tumbledrop", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, c.GetBool(ConfigDebug), "debug logging on")
	fs.Bool(ConfigLastRoundHalved, c.GetBool(ConfigLastRoundHalved), "halve bin values in the last round")
	fs.Int(ConfigTableBuckets, c.GetInt(ConfigTableBuckets), "transposition table buckets; 0 sizes the table from memory")
	fs.Float64(ConfigTableMemoryFraction, c.GetFloat64(ConfigTableMemoryFraction), "fraction of system memory for the transposition table")
	fs.Int(ConfigMinDepth, c.GetInt(ConfigMinDepth), "first search depth")
	fs.Int(ConfigMaxDepth, c.GetInt(ConfigMaxDepth), "last search depth")
	fs.IntSlice(ConfigOpening, c.GetIntSlice(ConfigOpening), "scripted opening slots, 0-based")
	fs.String(ConfigAutoplayLogfile, c.GetString(ConfigAutoplayLogfile), "autoplay drop log")
	fs.String(ConfigHistoryFile, c.GetString(ConfigHistoryFile), "shell history file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		c.AddConfigPath(filepath.Join(home, ".tumbledrop"))
	}
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// Opening returns the scripted opening slots.
func (c *Config) Opening() []int {
	return c.GetIntSlice(ConfigOpening)
}

// Args returns the arguments left after the flags.
func (c *Config) Args() []string {
	return c.args
}
