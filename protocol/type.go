package protocol

type Address [20]byte
