package command

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the data directories for a local site preview",
	Long: `Serve the partition files, manifests and chart datasets as static
files, the same way the published site consumes them. All filtering and
sampling happens in the browser; the server computes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(gin.ReleaseMode)
		r := gin.New()
		r.Use(gin.Recovery())

		r.StaticFS("/data", gin.Dir(cfg.DataDir, false))
		r.StaticFS("/data_cn", gin.Dir(cfg.DataDirCN, false))
		r.GET("/healthz", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		port := servePort
		if port == 0 {
			port = cfg.HTTPPort
		}
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		logger.Info("serving catalog preview", zap.String("addr", addr))
		return r.Run(addr)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (defaults to HTTP_PORT)")
	rootCmd.AddCommand(serveCmd)
}
