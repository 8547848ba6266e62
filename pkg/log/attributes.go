// Package log defines standard attribute keys for primer's log records.
//
// The keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so records from different lessons can be filtered the
// same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression", "OLS", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "load", "describe", "plot"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "linear", "stats", "datasets", "charts"
	ComponentKey = "ml.component"

	// LessonKey names the walkthrough lesson that emitted the record.
	LessonKey = "tour.lesson"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// TargetsKey indicates the number of target variables.
	TargetsKey = "data.targets"

	// SourceKey records where a dataset was read from.
	// Examples: "bundled", "/data/diabetes.tab.txt"
	SourceKey = "data.source"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// MSEKey, RMSEKey and MAEKey record regression error metrics.
	MSEKey  = "metrics.mse"
	RMSEKey = "metrics.rmse"
	MAEKey  = "metrics.mae"

	// ConditionNumberKey records the condition number of a design matrix.
	ConditionNumberKey = "metrics.condition_number"
)

// Error and Warning Context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Populated automatically when an error is the first logged field.
	StacktraceKey = "stacktrace"

	// ExpectedKey marks an error that the caller anticipated.
	ExpectedKey = "error.expected"
)

// Output Context
const (
	// OutputPathKey records a file written by the operation.
	OutputPathKey = "output.path"

	// FormatKey records an output encoding such as "png" or "svg".
	FormatKey = "output.format"
)

// Standard attribute value constants.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationLoad      = "load"
	OperationDescribe  = "describe"
	OperationPlot      = "plot"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
	PhaseReporting     = "reporting"
)
