package cli

var (
	PrintMatrix    = printMatrix
	GenerateReport = generateReport
	LoadDotEnv     = loadDotEnv
)
