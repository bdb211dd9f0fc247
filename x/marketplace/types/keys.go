package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "marketplace"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for marketplace
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

// Singleton store keys
var (
	ParamsKey          = []byte{0x01}
	NextJobIDKey       = []byte{0x02}
	PausedKey          = []byte{0x03}
	ReentrancyGuardKey = []byte{0x04}
	WorkerCountKey     = []byte{0x05}
	ActiveJobsKey      = []byte{0x06}
	CompletedJobsKey   = []byte{0x07}
	TotalJobsKey       = []byte{0x08}
)

// Record and index prefixes
var (
	JobKeyPrefix            = []byte{0x10}
	JobRequirementPrefix    = []byte{0x11}
	JobRequirementLenPrefix = []byte{0x12}
	JobMetadataPrefix       = []byte{0x13}
	JobMetadataLenPrefix    = []byte{0x14}
	JobsByStatePrefix       = []byte{0x15}
	JobsByClientPrefix      = []byte{0x16}
	JobsByWorkerPrefix      = []byte{0x17}

	WorkerKeyPrefix       = []byte{0x20}
	WorkerIDByAddrPrefix  = []byte{0x21}
	ReputationKeyPrefix   = []byte{0x30}
	LevelBucketPrefix     = []byte{0x31}
	LevelBucketSizePrefix = []byte{0x32}

	GasProfileKeyPrefix     = []byte{0x40}
	WorkerEfficiencyPrefix  = []byte{0x41}
	ModelKeyPrefix          = []byte{0x42}
	PendingSettlementPrefix = []byte{0x50}
)

func uint64Bytes(v uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, v)
	return bz
}

// GetUint64FromBytes decodes a big-endian uint64 key segment.
func GetUint64FromBytes(bz []byte) uint64 {
	return binary.BigEndian.Uint64(bz)
}

// GetBytesFromUint64 encodes a uint64 as a big-endian key segment.
func GetBytesFromUint64(v uint64) []byte {
	return uint64Bytes(v)
}

// JobKey returns the store key for a job record.
func JobKey(jobID uint64) []byte {
	return append(JobKeyPrefix, uint64Bytes(jobID)...)
}

// JobRequirementKey returns the store key for one indexed compute requirement.
func JobRequirementKey(jobID uint64, index uint64) []byte {
	key := append(JobRequirementPrefix, uint64Bytes(jobID)...)
	return append(key, uint64Bytes(index)...)
}

// JobRequirementLenKey returns the store key for a job's requirement count.
func JobRequirementLenKey(jobID uint64) []byte {
	return append(JobRequirementLenPrefix, uint64Bytes(jobID)...)
}

// JobMetadataKey returns the store key for one indexed metadata entry.
func JobMetadataKey(jobID uint64, index uint64) []byte {
	key := append(JobMetadataPrefix, uint64Bytes(jobID)...)
	return append(key, uint64Bytes(index)...)
}

// JobMetadataLenKey returns the store key for a job's metadata count.
func JobMetadataLenKey(jobID uint64) []byte {
	return append(JobMetadataLenPrefix, uint64Bytes(jobID)...)
}

// JobByStateKey indexes a job id under its lifecycle state.
func JobByStateKey(state uint32, jobID uint64) []byte {
	stateBz := make([]byte, 4)
	binary.BigEndian.PutUint32(stateBz, state)
	key := append(JobsByStatePrefix, stateBz...)
	return append(key, uint64Bytes(jobID)...)
}

// JobByClientKey indexes a job id under its submitting client.
func JobByClientKey(client sdk.AccAddress, jobID uint64) []byte {
	key := append(JobsByClientPrefix, client.Bytes()...)
	return append(key, uint64Bytes(jobID)...)
}

// JobByWorkerKey indexes a job id under its assigned worker address.
func JobByWorkerKey(worker sdk.AccAddress, jobID uint64) []byte {
	key := append(JobsByWorkerPrefix, worker.Bytes()...)
	return append(key, uint64Bytes(jobID)...)
}

// WorkerKey returns the store key for a worker record by id.
func WorkerKey(workerID uint64) []byte {
	return append(WorkerKeyPrefix, uint64Bytes(workerID)...)
}

// WorkerIDByAddrKey returns the reverse-lookup key from address to worker id.
func WorkerIDByAddrKey(addr sdk.AccAddress) []byte {
	return append(WorkerIDByAddrPrefix, addr.Bytes()...)
}

// ReputationKey returns the store key for a worker's reputation record.
func ReputationKey(workerID uint64) []byte {
	return append(ReputationKeyPrefix, uint64Bytes(workerID)...)
}

// LevelBucketKey addresses one slot of a per-level worker index.
func LevelBucketKey(level uint32, index uint64) []byte {
	key := append(LevelBucketPrefix, byte(level))
	return append(key, uint64Bytes(index)...)
}

// LevelBucketSizeKey holds the occupied length of a level bucket.
func LevelBucketSizeKey(level uint32) []byte {
	return append(LevelBucketSizePrefix, byte(level))
}

// GasProfileKey returns the store key for a job's gas profile.
func GasProfileKey(jobID uint64) []byte {
	return append(GasProfileKeyPrefix, uint64Bytes(jobID)...)
}

// WorkerEfficiencyKey returns the store key for a worker's efficiency record.
func WorkerEfficiencyKey(workerID uint64) []byte {
	return append(WorkerEfficiencyPrefix, uint64Bytes(workerID)...)
}

// ModelKey returns the store key for a registered model.
func ModelKey(modelID string) []byte {
	return append(ModelKeyPrefix, []byte(modelID)...)
}

// PendingSettlementKey returns the store key for a job's pending settlement.
func PendingSettlementKey(jobID uint64) []byte {
	return append(PendingSettlementPrefix, uint64Bytes(jobID)...)
}
