// Command roverctl wires up and runs every module of the rover control
// plane: simulated sensing, perception, planning, actuation, and the
// logging/operator-facing egress path, all communicating exclusively over
// bounded channels, with shutdown driven by context cancellation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"roverctl/internal/config"
	"roverctl/internal/modules/behaviour"
	"roverctl/internal/modules/calibration"
	"roverctl/internal/modules/communication"
	"roverctl/internal/modules/directuserinput"
	"roverctl/internal/modules/environment"
	"roverctl/internal/modules/goalplanning"
	"roverctl/internal/modules/hardware"
	"roverctl/internal/modules/inputmanager"
	"roverctl/internal/modules/logger"
	"roverctl/internal/modules/obstacleavoidance"
	"roverctl/internal/modules/outputmanager"
	"roverctl/internal/modules/safety"
	"roverctl/internal/modules/sensorarray"
	"roverctl/internal/modules/stance"
	"roverctl/internal/modules/statemanager"
	"roverctl/internal/modules/taskmission"
	"roverctl/internal/modules/userfeedback"
	"roverctl/internal/modules/userinstructions"
	"roverctl/internal/operatorcli"
	"roverctl/internal/roverlog/streamsink"
	"roverctl/internal/rovererr"
	"roverctl/internal/rovertypes"
	"roverctl/shared"
)

func main() {
	cfg := config.Load()
	shared.InitConfig()
	defer shared.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shared.DebugPrint("Starting roverctl with log dir %q, stream port %d", cfg.LogDir, cfg.LogStreamPort)

	logCh := make(chan rovertypes.LogRecord, config.LogQueueCapacity)

	log := logger.New(logCh, rovertypes.LevelDebug)
	if fileSink, err := logger.OpenFileSink(cfg.LogDir); err != nil {
		if errors.Is(err, rovererr.ErrSchemaMissing) {
			fmt.Printf("logger: binary log schema not embedded, aborting startup: %v\n", err)
			os.Exit(1)
		} else {
			fmt.Printf("logger: file sink unavailable, continuing without it: %v\n", err)
		}
	} else {
		log.AttachFile(fileSink)
	}
	if streamSink, err := streamsink.Listen(cfg.LogStreamPort); err != nil {
		if errors.Is(err, rovererr.ErrLogPortInUse) {
			fmt.Printf("logger: stream sink unavailable, port already in use, continuing without it: %v\n", err)
		} else {
			fmt.Printf("logger: stream sink unavailable, continuing without it: %v\n", err)
		}
	} else {
		log.AttachStream(streamSink)
		defer streamSink.Close()
	}
	var logWG sync.WaitGroup
	logWG.Add(1)
	go func() {
		defer logWG.Done()
		log.Run(ctx)
	}()

	// ---- channel topology ----

	sensorToHardware := make(chan rovertypes.SensorFrame, config.DataQueueCapacity)
	sensorToSafety := make(chan rovertypes.SensorFrame, config.DataQueueCapacity)
	sensorToOutput := make(chan rovertypes.SensorFrame, config.DataQueueCapacity)

	userCmdIn := make(chan rovertypes.UserCommand, config.DataQueueCapacity)
	hwStatusIn := make(chan rovertypes.HardwareStatus, config.DataQueueCapacity)

	imToEnvironment := make(chan rovertypes.SensorFrame, config.DataQueueCapacity)
	imToStateManagerSensor := make(chan rovertypes.SensorFrame, config.DataQueueCapacity)
	imToStateManagerCmd := make(chan rovertypes.UserCommand, config.DataQueueCapacity)
	imToTaskManager := make(chan rovertypes.UserCommand, config.DataQueueCapacity)

	hwToInputManager := make(chan rovertypes.SensorFrame, config.DataQueueCapacity)

	envToObstacleAvoidance := make(chan rovertypes.EnvironmentState, config.DataQueueCapacity)

	modeToGeneralBus := make(chan rovertypes.RobotMode, config.DataQueueCapacity)
	modeToSafety := make(chan rovertypes.RobotMode, config.DataQueueCapacity)
	modeToTaskManager := make(chan rovertypes.RobotMode, config.DataQueueCapacity)

	stanceRequests := make(chan stance.Request, config.DataQueueCapacity)
	stanceToBehaviour := make(chan rovertypes.StanceConfig, config.DataQueueCapacity)

	goalsToPlanning := make(chan rovertypes.Goal, config.DataQueueCapacity)
	pathRequests := make(chan obstacleavoidance.PathRequest, config.DataQueueCapacity)

	goalPathToBehaviour := make(chan rovertypes.Path, config.DataQueueCapacity)
	obstaclePathToBehaviour := make(chan rovertypes.Path, config.DataQueueCapacity)

	behaviorToSafety := make(chan rovertypes.BehaviorCommand, config.DataQueueCapacity)
	behaviorToHardware := make(chan rovertypes.BehaviorCommand, config.DataQueueCapacity)

	motorToOutput := make(chan rovertypes.MotorCommand, config.DataQueueCapacity)

	statusToUserFeedback := make(chan rovertypes.StatusUpdate, config.DataQueueCapacity)
	statusToCommunication := make(chan rovertypes.StatusUpdate, config.DataQueueCapacity)
	feedbackToCommunication := make(chan rovertypes.UserFeedback, config.DataQueueCapacity)
	feedbackToUserInstructions := make(chan string, config.DataQueueCapacity)

	calibrationRequests := make(chan calibration.Request, config.DataQueueCapacity)

	// ---- module construction ----

	sensorArray := sensorarray.New(logCh, sensorToHardware, sensorToSafety, sensorToOutput)
	directInput := directuserinput.New(logCh, userCmdIn)
	userInstructions := userinstructions.New(logCh, userCmdIn, feedbackToUserInstructions)

	hw := hardware.New(logCh, sensorToHardware, behaviorToHardware, hwToInputManager, hwStatusIn, motorToOutput)

	im := inputmanager.New(logCh, hwToInputManager, userCmdIn, hwStatusIn,
		imToEnvironment, imToStateManagerSensor, imToStateManagerCmd, imToTaskManager)

	calib := calibration.New(logCh, calibrationRequests)

	env := environment.New(logCh, imToEnvironment, envToObstacleAvoidance)

	sm := statemanager.New(logCh, imToStateManagerSensor, imToStateManagerCmd,
		modeToGeneralBus, modeToSafety, modeToTaskManager)

	st := stance.New(logCh, stanceRequests, stanceToBehaviour)

	tm := taskmission.New(logCh, imToTaskManager, modeToTaskManager, goalsToPlanning)

	gp := goalplanning.New(logCh, goalsToPlanning, stanceRequests, pathRequests, goalPathToBehaviour)

	oa := obstacleavoidance.New(logCh, envToObstacleAvoidance, pathRequests, stanceRequests, obstaclePathToBehaviour)

	bh := behaviour.New(logCh, goalPathToBehaviour, obstaclePathToBehaviour, stanceToBehaviour, behaviorToSafety)

	sc := safety.New(logCh, behaviorToSafety, sensorToSafety, modeToSafety, behaviorToHardware)

	om := outputmanager.New(logCh, motorToOutput, modeToGeneralBus, sensorToOutput, statusToUserFeedback, statusToCommunication)

	uf := userfeedback.New(logCh, statusToUserFeedback, feedbackToCommunication)

	comm := communication.New(logCh, statusToCommunication, feedbackToCommunication, feedbackToUserInstructions)

	// ---- calibration storage connection ----

	connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := calib.Connect(connectCtx, cfg.MongoURI, cfg.MongoDB); err != nil {
		if errors.Is(err, rovererr.ErrCalibrationUnavailable) {
			fmt.Printf("calibration storage: running with in-memory defaults, mongo unavailable: %v\n", err)
		} else {
			fmt.Printf("calibration storage: running with in-memory defaults: %v\n", err)
		}
	}
	connectCancel()

	// ---- spawn order: logger already running; inputs, hardware, input
	// manager, calibration, perception, planning, control, output ----

	var wg sync.WaitGroup
	run := func(fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
		}()
	}

	run(sensorArray.Run)
	run(directInput.Run)
	run(userInstructions.Run)
	run(hw.Run)
	run(im.Run)
	run(calib.Run)
	run(env.Run)
	run(sm.Run)
	run(st.Run)
	run(tm.Run)
	run(gp.Run)
	run(oa.Run)
	run(bh.Run)
	run(sc.Run)
	run(om.Run)
	run(uf.Run)
	run(comm.Run)

	printStartupCalibration(ctx, calibrationRequests)

	fmt.Println("All modules initialized and running!")
	fmt.Println("Press 'q' to shutdown")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go operatorcli.Listen(cancel)

	select {
	case <-ctx.Done():
		fmt.Println("Context cancelled, shutting down...")
	case <-sigs:
		fmt.Println("Received termination signal, shutting down...")
	}

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		fmt.Println("All modules have shut down gracefully.")
		// Safe to close only once every module goroutine has confirmed
		// it stopped sending; closing while a module might still be
		// mid-Log would panic on send-to-closed-channel.
		shared.SafeCloseChannel(logCh)
		logWG.Wait()
	case <-time.After(config.ShutdownDrainWindow):
		fmt.Println("Timeout waiting for modules to shut down, forcing exit.")
	}
}

// printStartupCalibration exercises the Get side of the calibration
// protocol once at startup, logging whichever CalibrationData the store
// seeded or loaded.
func printStartupCalibration(ctx context.Context, requests chan<- calibration.Request) {
	resp := make(chan rovertypes.CalibrationData, 1)
	select {
	case requests <- calibration.Request{Kind: calibration.Get, ResponsesTo: resp}:
	case <-ctx.Done():
		return
	}

	select {
	case data := <-resp:
		fmt.Printf("Calibration loaded: wheel diameter=%.2fm, wheel base=%.2fm\n", data.WheelDiameter, data.WheelBase)
	case <-time.After(2 * time.Second):
		fmt.Println("Calibration storage did not respond at startup")
	case <-ctx.Done():
	}
}
