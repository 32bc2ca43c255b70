package engine

import "github.com/charmbracelet/log"

// SetDebug raises the engine's log level to debug. cmd/stormcast calls this
// when --debug is set, exactly as cmd/revyl/main.go does for the CLI logger.
func SetDebug(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.InfoLevel)
}

func logActionOK(sessionID, key string) {
	log.Debug("action completed", "session", sessionID, "action", key)
}

func logActionError(sessionID, key string, err error) {
	log.Error("action failed", "session", sessionID, "action", key, "error", err)
}

func logFatal(sessionID string, cause any) {
	log.Error("session crashed", "session", sessionID, "cause", cause)
}

func logEnvironmentShutdown(environment string, pending int) {
	log.Error("environment shut down with workers still pending", "environment", environment, "pending", pending)
}

func logScenarioExcluded(scenarioName, reason string) {
	log.Error("session excluded from results", "scenario", scenarioName, "reason", reason)
}
