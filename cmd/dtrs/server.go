package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/doctrans/dtrs/internal/api"
	"github.com/doctrans/dtrs/internal/auth"
	"github.com/doctrans/dtrs/internal/filestore"
	"github.com/doctrans/dtrs/internal/supervisor"
)

const (
	listenFlag       = "listen"
	bucketFlag       = "bucket"
	workingDirectory = "workdir"
	signingKeyFlag   = "signing-key"
	debugFlag        = "debug"

	uploadSuperviseInterval = 60 * time.Second
	uploadMaxAge            = time.Hour
)

func init() {
	serverCmd.PersistentFlags().String(listenFlag, "localhost:8099", "Local interface and port to listen on")
	serverCmd.PersistentFlags().String(bucketFlag, "", "S3 bucket where submitted and translated documents are stored")
	serverCmd.PersistentFlags().String(workingDirectory, "/tmp/dtrs/workdir", "The directory where received documents are spooled before reaching the file store")
	serverCmd.PersistentFlags().String(signingKeyFlag, "", "HMAC key used to sign session tokens; may also be provided via DTRS_SIGNING_KEY")
	serverCmd.PersistentFlags().Bool(debugFlag, true, "Whether to output debug logs")
	serverCmd.MarkPersistentFlagRequired(bucketFlag)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the translation request server.",
	RunE: func(command *cobra.Command, args []string) error {

		debug, _ := command.Flags().GetBool(debugFlag)
		if debug {
			logger.SetLevel(logrus.DebugLevel)
		}

		listen, _ := command.Flags().GetString(listenFlag)
		if listen == "" {
			return errors.New("the server command requires the --listen flag not be empty")
		}

		workdir, _ := command.Flags().GetString(workingDirectory)
		if workdir == "" {
			return errors.New("the server command requires the --workdir flag not be empty")
		}
		_, err := os.Stat(workdir)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Wrapf(err, "the provided path for the working directory \"%s\" does not exist. Create it and try again?", workdir)
			}
			return errors.Wrapf(err, "failed to check status of working directory \"%s\"", workdir)
		}

		signingKey, _ := command.Flags().GetString(signingKeyFlag)
		if signingKey == "" {
			signingKey = os.Getenv("DTRS_SIGNING_KEY")
		}
		if signingKey == "" {
			return errors.New("a session token signing key is required; set --signing-key or DTRS_SIGNING_KEY")
		}

		sqlStore, err := sqlStore(command)
		if err != nil {
			return err
		}

		bucket, _ := command.Flags().GetString(bucketFlag)

		logger.WithFields(logrus.Fields{
			"bucket":  bucket,
			"workdir": workdir,
			"debug":   debug,
		}).Info("Starting DTRS Server")

		documentStore, err := filestore.NewS3FileStore(bucket)
		if err != nil {
			return errors.Wrap(err, "failed to build the document file store")
		}

		uploadSupervisor := supervisor.NewUploadSupervisor(sqlStore, logger, uploadSuperviseInterval, uploadMaxAge)
		uploadSupervisor.Start()

		router := mux.NewRouter()
		api.Register(router,
			&api.Context{
				Store:     sqlStore,
				Logger:    logger,
				FileStore: documentStore,
				Auth:      auth.NewAuthenticator([]byte(signingKey)),
				Workdir:   workdir,
			})

		srv := &http.Server{
			Addr:           listen,
			Handler:        router,
			ReadTimeout:    180 * time.Second,
			WriteTimeout:   180 * time.Second,
			IdleTimeout:    time.Second * 180,
			MaxHeaderBytes: 1 << 20,
		}

		go func() {
			logger.WithField("addr", srv.Addr).Info("Listening")
			err := srv.ListenAndServe()
			if err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Error("Failed to listen and serve")
			}
		}()

		c := make(chan os.Signal, 1)
		// We'll accept graceful shutdowns when quit via:
		//  - SIGINT (Ctrl+C)
		//  - SIGTERM (Kubernetes pod rolling termination)
		// SIGKILL and SIGQUIT will not be caught.
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		sig := <-c
		logger.WithField("shutdown-signal", sig.String()).Info("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
