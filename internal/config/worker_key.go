package config

type WorkerKeyStruct struct {
	PersistResponsesQueue string
	FailedResponsesQueue  string
}

var WorkerKey = &WorkerKeyStruct{
	PersistResponsesQueue: "persist_responses_queue",
	FailedResponsesQueue:  "failed_responses_queue",
}
