package main

func main() {
	SetupInferCmd()
	SetupStreamCmd()
	SetupModelsCmd()
	Execute()
}
