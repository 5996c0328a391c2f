package execshell

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	gitExecutableNameConstant           = "git"
	preCommitExecutableNameConstant     = "pre-commit"
	commandRunnerMissingMessageConstant = "command runner not configured"
	loggerMissingMessageConstant        = "logger not configured"
	commandFailureTemplateConstant      = "%s exited with code %d"
	commandStartedLogMessageConstant    = "external command started"
	commandCompletedLogMessageConstant  = "external command completed"
	commandFailedLogMessageConstant     = "external command failed"
	logFieldCommandNameConstant         = "command"
	logFieldCommandArgumentsConstant    = "arguments"
	logFieldWorkingDirectoryConstant    = "working_directory"
	logFieldExitCodeConstant            = "exit_code"
	logFieldStandardErrorConstant       = "stderr"
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executables.
const (
	CommandGit       CommandName = CommandName(gitExecutableNameConstant)
	CommandPreCommit CommandName = CommandName(preCommitExecutableNameConstant)
)

// CommandDetails describes a single tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand combines a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner abstracts process execution for testability.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error renders the failure with the offending executable and exit code.
func (failure *CommandFailedError) Error() string {
	return fmt.Sprintf(commandFailureTemplateConstant, string(failure.Command.Name), failure.Result.ExitCode)
}

// ShellExecutor coordinates command execution, logging, and event observation.
type ShellExecutor struct {
	logger   *zap.Logger
	runner   CommandRunner
	observer CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor with the supplied collaborators.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, errors.New(loggerMissingMessageConstant)
	}
	if runner == nil {
		return nil, errors.New(commandRunnerMissingMessageConstant)
	}
	if observer == nil {
		observer = noopCommandEventObserver{}
	}

	return &ShellExecutor{logger: logger, runner: runner, observer: observer}, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecutePreCommit runs the pre-commit executable with the provided details.
func (executor *ShellExecutor) ExecutePreCommit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, ShellCommand{Name: CommandPreCommit, Details: details})
}

func (executor *ShellExecutor) execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.observer.CommandStarted(command)
	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)

	executionResult, executionError := executor.runner.Run(executionContext, command)
	if executionError != nil {
		executor.observer.CommandExecutionFailed(command, executionError)
		executor.logger.Debug(
			commandFailedLogMessageConstant,
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Error(executionError),
		)
		return ExecutionResult{}, executionError
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Debug(
			commandFailedLogMessageConstant,
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
			zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
		)
		return executionResult, &CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)

	return executionResult, nil
}
