package common

import (
	"log/slog"

	"github.com/amirasaad/commandhandler/pkg/repository"
)

func GetBalanceRepository(
	uow repository.UnitOfWork,
	log *slog.Logger,
) (
	repository.BalanceRepository,
	error,
) {
	repo, err := uow.BalanceRepository()
	if err != nil {
		log.Error(
			"failed to get balance repository",
			"error", err,
		)
		return nil, err
	}
	return repo, nil
}

func GetCreationOutcomeRepository(
	uow repository.UnitOfWork,
	log *slog.Logger,
) (
	repository.CreationOutcomeRepository,
	error,
) {
	repo, err := uow.CreationOutcomeRepository()
	if err != nil {
		log.Error(
			"failed to get creation outcome repository",
			"error", err,
		)
		return nil, err
	}
	return repo, nil
}

func GetTransferOutcomeRepository(
	uow repository.UnitOfWork,
	log *slog.Logger,
) (
	repository.TransferOutcomeRepository,
	error,
) {
	repo, err := uow.TransferOutcomeRepository()
	if err != nil {
		log.Error(
			"failed to get transfer outcome repository",
			"error", err,
		)
		return nil, err
	}
	return repo, nil
}

func GetOutboxRepository(
	uow repository.UnitOfWork,
	log *slog.Logger,
) (
	repository.OutboxRepository,
	error,
) {
	repo, err := uow.OutboxRepository()
	if err != nil {
		log.Error(
			"failed to get outbox repository",
			"error", err,
		)
		return nil, err
	}
	return repo, nil
}
