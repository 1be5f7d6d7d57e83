package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/abcfe/abcfe-wallet/app"
	"github.com/abcfe/abcfe-wallet/common/logger"
	"github.com/abcfe/abcfe-wallet/internal/dashboard"
	"github.com/spf13/cobra"
)

// Version info (Injected from Makefile)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	configFile string
	debug      bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "abcfe-wallets",
		Short: "ABCFe 지갑 관리 TUI",
		Long: `ABCFe Wallets - 지갑 생성/가져오기 TUI

새 지갑을 만들거나 복구 구문, 개인키로 기존 지갑을 추가합니다.

사용 예시:
  abcfe-wallets                    # TUI 실행
  abcfe-wallets list               # 저장된 지갑 출력
  abcfe-wallets serve              # 읽기 전용 REST API`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	// Register global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug level logging")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Failed to execute command:", err)
		os.Exit(1)
	}
}

func runTUI() error {
	// TUI가 화면을 쓰므로 콘솔 로그 없음
	application, err := app.New(configFile, false)
	if err != nil {
		return err
	}
	defer application.Cleanup()

	if err := application.NewRest(); err != nil {
		logger.Error("Failed to start REST API: ", err)
	}

	logger.Info("Wallets TUI start.")
	return dashboard.Run(dashboard.Config{
		Controller: application.NewController(),
		LogPath:    application.LogPath,
		RefreshSec: 2,
	})
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "저장된 지갑 목록 출력",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(configFile, debug)
			if err != nil {
				return err
			}
			defer application.Cleanup()

			wallets, err := application.Store.FetchAll(context.Background())
			if err != nil {
				return err
			}
			if len(wallets) == 0 {
				fmt.Println("No wallets yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tEMOJI\tNAME\tCOLOR\tADDRESS")
			for i, w := range wallets {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, w.Emoji, w.Name, w.Color.Hex(), w.Address)
			}
			return tw.Flush()
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "읽기 전용 REST API 실행",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(configFile, debug)
			if err != nil {
				return err
			}
			if application.Conf.Server.RestPort <= 0 {
				application.Cleanup()
				return fmt.Errorf("Server.RestPort is not set")
			}

			application.SigHandler()
			if err := application.NewRest(); err != nil {
				application.Terminate()
				return err
			}

			application.Wait()
			logger.Info("Server terminated.")
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "버전 정보 출력",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ABCFe Wallets %s (built: %s)\n", Version, BuildTime)
		},
	}
}
