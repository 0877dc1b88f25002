package repositories

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"

	"properties-api/domain"
)

// PropertyPage es una página de resultados cacheada junto con su total
type PropertyPage struct {
	Properties []domain.Property `json:"properties"`
	Total      int64             `json:"total"`
}

// CacheRepository define la interfaz para el caché de resultados
type CacheRepository interface {
	Get(key string) (*PropertyPage, bool)
	Set(key string, page *PropertyPage, ttl time.Duration)
	Delete(key string)
	Version(key string) int64
	Bump(key string)
}

// cacheRepository implementa CacheRepository con dos niveles:
// un ccache local en memoria y Memcached compartido entre instancias
type cacheRepository struct {
	localCache      *ccache.Cache[*PropertyPage]
	memcachedClient *memcache.Client
}

// localTTL es el TTL del nivel local; corto para que las escrituras
// se reflejen rápido sin invalidación explícita por clave
const localTTL = 1 * time.Minute

// NewCacheRepository crea una nueva instancia de CacheRepository
func NewCacheRepository(memcachedHost string) CacheRepository {
	localCache := ccache.New(ccache.Configure[*PropertyPage]().MaxSize(1000))
	memcachedClient := memcache.New(memcachedHost)

	log.Printf("Cache repository initialized with Memcached at %s", memcachedHost)

	return &cacheRepository{
		localCache:      localCache,
		memcachedClient: memcachedClient,
	}
}

// Get obtiene una página del caché (primero local, después Memcached)
func (r *cacheRepository) Get(key string) (*PropertyPage, bool) {
	// 1. Buscar en el caché local primero
	item := r.localCache.Get(key)
	if item != nil && !item.Expired() {
		log.Printf("Cache HIT (local): key=%s", key)
		return item.Value(), true
	}

	// 2. Si no está en local, buscar en Memcached
	memcachedItem, err := r.memcachedClient.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			log.Printf("Error getting from Memcached: key=%s, error=%v", key, err)
		}
		return nil, false
	}

	var page PropertyPage
	if err := json.Unmarshal(memcachedItem.Value, &page); err != nil {
		log.Printf("Error unmarshaling cache data from Memcached: key=%s, error=%v", key, err)
		return nil, false
	}

	// 3. Guardar en el caché local para las próximas consultas
	r.localCache.Set(key, &page, localTTL)
	log.Printf("Cache HIT (Memcached): key=%s, stored in local cache", key)

	return &page, true
}

// Set guarda una página en ambos niveles de caché
func (r *cacheRepository) Set(key string, page *PropertyPage, ttl time.Duration) {
	// 1. Guardar en el caché local
	r.localCache.Set(key, page, localTTL)

	// 2. Serializar a JSON para Memcached
	jsonData, err := json.Marshal(page)
	if err != nil {
		log.Printf("Error marshaling cache data for Memcached: key=%s, error=%v", key, err)
		return
	}

	// 3. Guardar en Memcached (el TTL va en segundos)
	memcachedItem := &memcache.Item{
		Key:        key,
		Value:      jsonData,
		Expiration: int32(ttl / time.Second),
	}
	if err := r.memcachedClient.Set(memcachedItem); err != nil {
		log.Printf("Error setting cache in Memcached: key=%s, error=%v", key, err)
	}
}

// Delete elimina una clave de ambos niveles de caché
func (r *cacheRepository) Delete(key string) {
	r.localCache.Delete(key)

	if err := r.memcachedClient.Delete(key); err != nil && err != memcache.ErrCacheMiss {
		log.Printf("Error deleting from Memcached: key=%s, error=%v", key, err)
	}
}

// Version lee un contador de invalidación compartido entre instancias
// Devuelve 0 si el contador todavía no existe o Memcached no responde
func (r *cacheRepository) Version(key string) int64 {
	item, err := r.memcachedClient.Get(key)
	if err != nil {
		return 0
	}
	version, err := strconv.ParseInt(string(item.Value), 10, 64)
	if err != nil {
		return 0
	}
	return version
}

// Bump incrementa el contador de invalidación
// Las claves armadas con la versión anterior quedan huérfanas y expiran por TTL
func (r *cacheRepository) Bump(key string) {
	if _, err := r.memcachedClient.Increment(key, 1); err != nil {
		// El contador todavía no existe
		if err := r.memcachedClient.Add(&memcache.Item{Key: key, Value: []byte("1")}); err != nil && err != memcache.ErrNotStored {
			log.Printf("Error bumping cache version: key=%s, error=%v", key, err)
		}
	}
}
