package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "traitsigner",
	Short: "trait attestation service for the staking bank.",
	Long:  "trait attestation service: signs deposit attestations and manages owner-signed trait records.",
}

// Execute 解析命令行参数并执行对应子命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.traitsigner.toml)")
}

// initConfig 未指定 --config 时读取 $HOME/.traitsigner.toml
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".traitsigner")
	}
	viper.SetConfigType("toml")
}
